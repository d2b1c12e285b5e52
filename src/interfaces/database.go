package interfaces

import "log-analyzer/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for storage operations.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveReportRows inserts the finalized rows of one run, keyed by the
	// analyzed log date (YYYY.MM.DD).
	SaveReportRows(logDate string, rows []models.MReportRow) error

	// -----------------------------------------------------------------------------

	// SaveRunSummary upserts the run metadata for a log date.
	SaveRunSummary(summary models.MRunSummary) error

	// -----------------------------------------------------------------------------

	// LatestRunSummary returns the most recent run, nil when none exists.
	LatestRunSummary() (*models.MRunSummary, error)

	// -----------------------------------------------------------------------------

	// CleanupOldData removes runs older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
