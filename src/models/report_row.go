package models

// MReportRow is one finalized line of the latency report. Rows are
// produced in bulk by the finalizer and never mutated afterwards.
type MReportRow struct {
	URL       string  `json:"url"`
	Count     int     `json:"count"`
	CountPerc float64 `json:"count_perc"`
	TimeSum   float64 `json:"time_sum"`
	TimePerc  float64 `json:"time_perc"`
	TimeAvg   float64 `json:"time_avg"`
	TimeMax   float64 `json:"time_max"`
	TimeMed   float64 `json:"time_med"`
}
