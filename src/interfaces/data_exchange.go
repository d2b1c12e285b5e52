package interfaces

import "log-analyzer/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for sharing reports with external
// consumers (HTTP API / WebSocket push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Broadcast pushes a completed report to connected listeners.
	Broadcast(report *models.MLatestReport)

	// -----------------------------------------------------------------------------
	// UpdateLatestReport replaces the internal state without broadcasting.
	UpdateLatestReport(report *models.MLatestReport)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
