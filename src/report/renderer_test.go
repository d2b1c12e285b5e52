package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"log-analyzer/src/logger"
	"log-analyzer/src/models"
)

func testRenderer(t *testing.T) (*Renderer, string) {
	t.Helper()
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "report.html")
	template := "<html><body><script>var table = $table_json;</script></body></html>"
	if err := os.WriteFile(templatePath, []byte(template), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &models.MConfig{
		Report: models.MReportConfig{
			Dir:          filepath.Join(dir, "reports"),
			TemplatePath: templatePath,
		},
	}
	return NewRenderer(cfg, logger.NewLogger("ERROR", "test")), dir
}

func TestReportPath(t *testing.T) {
	r, _ := testRenderer(t)

	date := time.Date(2017, 6, 30, 0, 0, 0, 0, time.UTC)
	got := r.ReportPath(date)
	if filepath.Base(got) != "report-2017.06.30.html" {
		t.Errorf("ReportPath = %s, want report-2017.06.30.html", got)
	}
}

func TestRenderSubstitutesTable(t *testing.T) {
	r, _ := testRenderer(t)

	rows := []models.MReportRow{
		{URL: "/a", Count: 2, TimeSum: 0.4, TimeAvg: 0.2, TimeMax: 0.3, TimeMed: 0.2},
		{URL: "/b", Count: 1, TimeSum: 0.2, TimeAvg: 0.2, TimeMax: 0.2, TimeMed: 0.2},
	}

	path := r.ReportPath(time.Date(2017, 6, 30, 0, 0, 0, 0, time.UTC))
	if err := r.Render(path, rows); err != nil {
		t.Fatalf("Render: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(content)

	if strings.Contains(out, "$table_json") {
		t.Error("placeholder was not substituted")
	}

	// The substituted JSON must decode back to the same rows
	start := strings.Index(out, "var table = ") + len("var table = ")
	end := strings.Index(out[start:], ";")
	var decoded []models.MReportRow
	if err := json.Unmarshal([]byte(out[start:start+end]), &decoded); err != nil {
		t.Fatalf("embedded table is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].URL != "/a" || decoded[1].URL != "/b" {
		t.Errorf("decoded rows = %+v", decoded)
	}
}

func TestRenderCreatesReportDir(t *testing.T) {
	r, _ := testRenderer(t)

	path := r.ReportPath(time.Date(2017, 6, 30, 0, 0, 0, 0, time.UTC))
	if err := r.Render(path, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !r.Exists(path) {
		t.Error("report file not created")
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	r, _ := testRenderer(t)
	r.Config.Report.TemplatePath = filepath.Join(t.TempDir(), "nope.html")

	err := r.Render(filepath.Join(t.TempDir(), "out.html"), nil)
	if err == nil {
		t.Error("want error for missing template")
	}
}

func TestExists(t *testing.T) {
	r, dir := testRenderer(t)

	if r.Exists(filepath.Join(dir, "nope.html")) {
		t.Error("Exists = true for missing file")
	}
	if !r.Exists(r.Config.Report.TemplatePath) {
		t.Error("Exists = false for present file")
	}
	if r.Exists(dir) {
		t.Error("Exists = true for a directory")
	}
}
