package analysis

import (
	"context"
	"sync"

	"log-analyzer/src/helpers"
	"log-analyzer/src/interfaces"
	"log-analyzer/src/logger"
	"log-analyzer/src/models"
	"log-analyzer/src/parser"
)

// -----------------------------------------------------------------------------
// Analyzer
// -----------------------------------------------------------------------------

// Analyzer wires the line source, the parser and the aggregation pass
// together. One instance per run; it carries no process-wide state.
type Analyzer struct {
	Config *models.MConfig
	Logger *logger.Logger
	Parser *parser.LineParser
}

// -----------------------------------------------------------------------------

func NewAnalyzer(cfg *models.MConfig, log *logger.Logger) *Analyzer {
	return &Analyzer{
		Config: cfg,
		Logger: log.WithName("Analyzer"),
		Parser: parser.NewLineParser(log),
	}
}

// -----------------------------------------------------------------------------

// Run streams the source through the parser into aggregator state.
// With workers > 1 the stream is sharded across a worker pool and the
// per-shard aggregators are merged afterwards; the result is identical
// to the single-pass fold. An optional max_lines bound stops the fold
// early, finalization still runs on whatever was accumulated.
func (a *Analyzer) Run(ctx context.Context, src interfaces.ILogSource) (*Aggregator, error) {
	if a.Config.Analyzer.Workers > 1 {
		return a.runSharded(ctx, src, a.Config.Analyzer.Workers)
	}
	return a.runSingle(ctx, src)
}

// -----------------------------------------------------------------------------

func (a *Analyzer) runSingle(ctx context.Context, src interfaces.ILogSource) (*Aggregator, error) {
	agg := NewAggregator()
	maxLines := a.Config.Source.MaxLines

	err := src.Stream(ctx, func(line string) bool {
		agg.AddOutcome(a.Parser.ParseLine(line))
		return maxLines == 0 || agg.TotalCount() < maxLines
	})
	if err != nil {
		return nil, &helpers.SourceError{LogAnalyzerError: helpers.LogAnalyzerError{
			Message: "reading log source failed", Cause: err}}
	}

	a.Logger.Info("processed %d lines (%d failed, %d unique urls)",
		agg.TotalCount(), agg.FailedCount(), agg.URLCount())
	return agg, nil
}

// -----------------------------------------------------------------------------

func (a *Analyzer) runSharded(ctx context.Context, src interfaces.ILogSource, workers int) (*Aggregator, error) {
	lineChan := make(chan string, 1000)
	aggChan := make(chan *Aggregator, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := NewAggregator()
			for line := range lineChan {
				local.AddOutcome(a.Parser.ParseLine(line))
			}
			aggChan <- local
		}()
	}

	// The reader owns the max_lines bound; shards just drain the channel.
	maxLines := a.Config.Source.MaxLines
	seen := 0
	streamErr := src.Stream(ctx, func(line string) bool {
		lineChan <- line
		seen++
		return maxLines == 0 || seen < maxLines
	})
	close(lineChan)

	wg.Wait()
	close(aggChan)

	merged := NewAggregator()
	for shard := range aggChan {
		merged.Merge(shard)
	}

	if streamErr != nil {
		return nil, &helpers.SourceError{LogAnalyzerError: helpers.LogAnalyzerError{
			Message: "reading log source failed", Cause: streamErr}}
	}

	a.Logger.Info("processed %d lines across %d workers (%d failed, %d unique urls)",
		merged.TotalCount(), workers, merged.FailedCount(), merged.URLCount())
	return merged, nil
}

// -----------------------------------------------------------------------------

// BuildReport finalizes the aggregated state into the ordered report
// table using the configured report size and error threshold.
func (a *Analyzer) BuildReport(agg *Aggregator) ([]models.MReportRow, error) {
	return Finalize(agg, a.Config.Analyzer.ReportSize, a.Config.Analyzer.ErrorThreshold)
}
