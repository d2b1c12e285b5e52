package models

import "time"

// MRunSummary represents the outcome metrics of one analysis run.
type MRunSummary struct {
	LogDate        string    `json:"log_date"` // YYYY.MM.DD of the analyzed file
	TotalLines     int       `json:"total_lines"`
	ParsedLines    int       `json:"parsed_lines"`
	FailedLines    int       `json:"failed_lines"`
	UniqueURLs     int       `json:"unique_urls"`
	TotalTime      float64   `json:"total_time"`
	RowsReported   int       `json:"rows_reported"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	CreatedAt      time.Time `json:"created_at"`
}
