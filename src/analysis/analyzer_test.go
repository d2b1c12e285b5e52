package analysis

import (
	"context"
	"math"
	"testing"

	"log-analyzer/src/logger"
	"log-analyzer/src/models"
)

// sliceSource streams a fixed set of lines, like a log file would.
type sliceSource struct {
	lines []string
}

func (s *sliceSource) Stream(ctx context.Context, fn func(line string) bool) error {
	for _, line := range s.lines {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !fn(line) {
			return nil
		}
	}
	return nil
}

func testConfig(workers, maxLines int) *models.MConfig {
	return &models.MConfig{
		Name: "test",
		Source: models.MSourceConfig{
			MaxLines: maxLines,
		},
		Analyzer: models.MAnalyzerConfig{
			ReportSize:     100,
			ErrorThreshold: 0.5,
			Workers:        workers,
		},
	}
}

var sampleLines = []string{
	`1.2.3.4 - - [DATE] "GET /a HTTP/1.1" 200 10 "-" "-" "-" "-" "-" 0.1`,
	`1.2.3.4 - - [DATE] "GET /a HTTP/1.1" 200 10 "-" "-" "-" "-" "-" 0.3`,
	`1.2.3.4 - - [DATE] "GET /b HTTP/1.1" 200 10 "-" "-" "-" "-" "-" 0.2`,
}

func TestAnalyzerRunSinglePass(t *testing.T) {
	a := NewAnalyzer(testConfig(1, 0), logger.NewLogger("ERROR", "test"))

	agg, err := a.Run(context.Background(), &sliceSource{lines: sampleLines})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	rows, err := a.BuildReport(agg)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].URL != "/a" || rows[0].Count != 2 {
		t.Errorf("first row = %+v, want /a with count 2", rows[0])
	}
	if rows[1].URL != "/b" || rows[1].Count != 1 {
		t.Errorf("second row = %+v, want /b with count 1", rows[1])
	}
}

func TestAnalyzerRunSharded(t *testing.T) {
	single := NewAnalyzer(testConfig(1, 0), logger.NewLogger("ERROR", "test"))
	sharded := NewAnalyzer(testConfig(4, 0), logger.NewLogger("ERROR", "test"))

	lines := make([]string, 0, 300)
	for i := 0; i < 100; i++ {
		lines = append(lines, sampleLines...)
	}

	seqAgg, err := single.Run(context.Background(), &sliceSource{lines: lines})
	if err != nil {
		t.Fatalf("single Run: %v", err)
	}
	parAgg, err := sharded.Run(context.Background(), &sliceSource{lines: lines})
	if err != nil {
		t.Fatalf("sharded Run: %v", err)
	}

	if parAgg.TotalCount() != seqAgg.TotalCount() {
		t.Errorf("sharded TotalCount = %d, single = %d", parAgg.TotalCount(), seqAgg.TotalCount())
	}
	if math.Abs(parAgg.TotalTime()-seqAgg.TotalTime()) > 1e-9 {
		t.Errorf("sharded TotalTime = %v, single = %v", parAgg.TotalTime(), seqAgg.TotalTime())
	}

	seqRows, err := single.BuildReport(seqAgg)
	if err != nil {
		t.Fatalf("single BuildReport: %v", err)
	}
	parRows, err := sharded.BuildReport(parAgg)
	if err != nil {
		t.Fatalf("sharded BuildReport: %v", err)
	}
	if len(seqRows) != len(parRows) {
		t.Fatalf("row counts differ: %d vs %d", len(seqRows), len(parRows))
	}
	// Shards add times in a different order, so compare floats with a
	// tolerance instead of exact equality.
	const eps = 1e-9
	for i := range seqRows {
		s, p := seqRows[i], parRows[i]
		if s.URL != p.URL || s.Count != p.Count {
			t.Errorf("row %d differs: %+v vs %+v", i, s, p)
			continue
		}
		if math.Abs(s.TimeSum-p.TimeSum) > eps || math.Abs(s.TimeAvg-p.TimeAvg) > eps ||
			math.Abs(s.TimeMax-p.TimeMax) > eps || math.Abs(s.TimeMed-p.TimeMed) > eps ||
			math.Abs(s.CountPerc-p.CountPerc) > eps || math.Abs(s.TimePerc-p.TimePerc) > eps {
			t.Errorf("row %d metrics differ: %+v vs %+v", i, s, p)
		}
	}
}

func TestAnalyzerMaxLines(t *testing.T) {
	a := NewAnalyzer(testConfig(1, 2), logger.NewLogger("ERROR", "test"))

	agg, err := a.Run(context.Background(), &sliceSource{lines: sampleLines})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := agg.TotalCount(); got != 2 {
		t.Errorf("TotalCount = %d, want 2 (early stop)", got)
	}

	// Early stop still finalizes normally
	rows, err := a.BuildReport(agg)
	if err != nil {
		t.Fatalf("BuildReport after early stop: %v", err)
	}
	if len(rows) != 1 || rows[0].URL != "/a" || rows[0].Count != 2 {
		t.Errorf("rows = %+v, want single /a row with count 2", rows)
	}
}

func TestAnalyzerUnparsableLinesAreCounted(t *testing.T) {
	a := NewAnalyzer(testConfig(1, 0), logger.NewLogger("ERROR", "test"))

	lines := append([]string{}, sampleLines...)
	lines = append(lines, "garbage line", `1.2.3.4 - - [DATE] "GET /a HT`)

	agg, err := a.Run(context.Background(), &sliceSource{lines: lines})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := agg.TotalCount(); got != 5 {
		t.Errorf("TotalCount = %d, want 5", got)
	}
	if got := agg.FailedCount(); got != 2 {
		t.Errorf("FailedCount = %d, want 2", got)
	}
}
