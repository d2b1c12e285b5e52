package models

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

// MLatestReport is the payload held by the API server and pushed to
// websocket clients when an analysis run completes.
type MLatestReport struct {
	Type      string       `json:"type"` // "INITIAL" or "UPDATE"
	LogDate   string       `json:"log_date"`
	Rows      []MReportRow `json:"rows"`
	Summary   MRunSummary  `json:"run_summary"`
	Timestamp int64        `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// MSubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string `json:"command"`
	TopN    int    `json:"top_n"`
}
