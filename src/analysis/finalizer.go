package analysis

import (
	"sort"

	"log-analyzer/src/analysis/core"
	"log-analyzer/src/helpers"
	"log-analyzer/src/models"
)

// -----------------------------------------------------------------------------
// Stats Finalizer
// -----------------------------------------------------------------------------

// Finalize turns the completed aggregator state into the ordered report
// table: derived metrics per URL, descending time_sum order (ties by
// URL), truncated to reportSize rows. Percentage denominators are the
// global totals, so truncation does not distort the shares of the rows
// that remain.
//
// Fails with a ConfigurationError on invalid parameters and with a
// DataQualityError when the input was empty or the parse-failure ratio
// exceeded errorThreshold.
func Finalize(agg *Aggregator, reportSize int, errorThreshold float64) ([]models.MReportRow, error) {
	if reportSize <= 0 {
		return nil, helpers.NewConfigurationError("report size must be greater than 0, got %d", reportSize)
	}
	if errorThreshold < 0 || errorThreshold > 1 {
		return nil, helpers.NewConfigurationError("error threshold must be within [0, 1], got %v", errorThreshold)
	}

	totalCount := agg.TotalCount()
	if totalCount == 0 {
		return nil, helpers.NewDataQualityError("no log lines to analyze")
	}

	ratio := agg.FailureRatio()
	if ratio > errorThreshold {
		return nil, helpers.NewDataQualityError(
			"parse failure ratio %.4f exceeds threshold %.4f (%d of %d lines)",
			ratio, errorThreshold, agg.FailedCount(), totalCount)
	}

	totalTime := agg.TotalTime()

	rows := make([]models.MReportRow, 0, agg.URLCount())
	for url, stats := range agg.Stats() {
		rows = append(rows, models.MReportRow{
			URL:       url,
			Count:     stats.Count,
			CountPerc: core.Percentage(float64(stats.Count), float64(totalCount)),
			TimeSum:   stats.TotalTime,
			TimePerc:  core.Percentage(stats.TotalTime, totalTime),
			TimeAvg:   stats.TotalTime / float64(stats.Count),
			TimeMax:   core.Max(stats.Times),
			TimeMed:   core.Median(stats.Times),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TimeSum != rows[j].TimeSum {
			return rows[i].TimeSum > rows[j].TimeSum
		}
		return rows[i].URL < rows[j].URL
	})

	if len(rows) > reportSize {
		rows = rows[:reportSize]
	}

	return rows, nil
}
