package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log-analyzer/src/helpers"
	"log-analyzer/src/logger"
	"log-analyzer/src/models"
)

// -----------------------------------------------------------------------------
// HTML Report Renderer
// -----------------------------------------------------------------------------

// LogDateFormat is the date layout used in report filenames and storage
// keys.
const LogDateFormat = "2006.01.02"

// Placeholder substituted with the JSON-encoded row table inside the
// HTML template.
const tablePlaceholder = "$table_json"

// -----------------------------------------------------------------------------

// Renderer writes the finalized report table into a static HTML file by
// substituting the row JSON into a template.
type Renderer struct {
	Config *models.MConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewRenderer(cfg *models.MConfig, log *logger.Logger) *Renderer {
	return &Renderer{Config: cfg, Logger: log}
}

// -----------------------------------------------------------------------------

// ReportPath returns the target path for the report of the given log
// date: <report_dir>/report-YYYY.MM.DD.html.
func (r *Renderer) ReportPath(logDate time.Time) string {
	name := fmt.Sprintf("report-%s.html", logDate.Format(LogDateFormat))
	return filepath.Join(r.Config.Report.Dir, name)
}

// -----------------------------------------------------------------------------

// Exists reports whether a rendered report is already on disk.
func (r *Renderer) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// -----------------------------------------------------------------------------

// Render writes the report file. The template is read fresh on every
// run so template edits apply without a restart.
func (r *Renderer) Render(path string, rows []models.MReportRow) error {
	template, err := os.ReadFile(r.Config.Report.TemplatePath)
	if err != nil {
		return &helpers.ReportError{LogAnalyzerError: helpers.LogAnalyzerError{
			Message: "cannot read report template", Cause: err}}
	}

	tableJSON, err := json.Marshal(rows)
	if err != nil {
		return &helpers.ReportError{LogAnalyzerError: helpers.LogAnalyzerError{
			Message: "cannot encode report rows", Cause: err}}
	}

	output := strings.ReplaceAll(string(template), tablePlaceholder, string(tableJSON))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &helpers.ReportError{LogAnalyzerError: helpers.LogAnalyzerError{
			Message: "cannot create report directory", Cause: err}}
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return &helpers.ReportError{LogAnalyzerError: helpers.LogAnalyzerError{
			Message: "cannot write report file", Cause: err}}
	}

	r.Logger.Info("Report written to %s (%d rows)", path, len(rows))
	return nil
}
