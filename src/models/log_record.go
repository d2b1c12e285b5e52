package models

// MRequestRecord represents one successfully parsed access-log line.
// Ephemeral: produced by the parser, folded into the aggregator,
// never retained.
type MRequestRecord struct {
	URL          string  `json:"url"`
	ResponseTime float64 `json:"response_time"`
}
