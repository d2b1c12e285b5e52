package analysis

import (
	"log-analyzer/src/parser"
)

// -----------------------------------------------------------------------------
// Per-URL running state
// -----------------------------------------------------------------------------

// URLStats is the mutable accumulator for one URL. Times keeps every
// observed duration: the median needs the full distribution, not a
// running approximation.
type URLStats struct {
	URL       string
	Count     int
	TotalTime float64
	Times     []float64
}

// -----------------------------------------------------------------------------
// Aggregator
// -----------------------------------------------------------------------------

// Aggregator folds parse outcomes into per-URL running statistics in a
// single forward pass. It holds no references to the input stream, so
// memory is bounded by distinct-URL cardinality rather than line count.
// Not safe for concurrent use; sharded runs merge afterwards.
type Aggregator struct {
	urls        map[string]*URLStats
	totalCount  int
	failedCount int
	totalTime   float64
}

// -----------------------------------------------------------------------------

func NewAggregator() *Aggregator {
	return &Aggregator{
		urls: make(map[string]*URLStats),
	}
}

// -----------------------------------------------------------------------------

// AddOutcome folds one parse outcome into the running state.
func (a *Aggregator) AddOutcome(o parser.Outcome) {
	a.totalCount++

	if o.Failed {
		a.failedCount++
		return
	}

	a.totalTime += o.Record.ResponseTime

	stats, ok := a.urls[o.Record.URL]
	if !ok {
		stats = &URLStats{URL: o.Record.URL}
		a.urls[o.Record.URL] = stats
	}
	stats.Count++
	stats.TotalTime += o.Record.ResponseTime
	stats.Times = append(stats.Times, o.Record.ResponseTime)
}

// -----------------------------------------------------------------------------

// Merge folds another aggregator into this one: per-URL counts and sums
// add, times concatenate, global counters sum arithmetically. Used to
// combine per-shard state after a parallel pass.
func (a *Aggregator) Merge(other *Aggregator) {
	a.totalCount += other.totalCount
	a.failedCount += other.failedCount
	a.totalTime += other.totalTime

	for url, theirs := range other.urls {
		mine, ok := a.urls[url]
		if !ok {
			a.urls[url] = theirs
			continue
		}
		mine.Count += theirs.Count
		mine.TotalTime += theirs.TotalTime
		mine.Times = append(mine.Times, theirs.Times...)
	}
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// TotalCount returns the number of lines seen, parsed or not.
func (a *Aggregator) TotalCount() int { return a.totalCount }

// FailedCount returns the number of lines that failed to parse.
func (a *Aggregator) FailedCount() int { return a.failedCount }

// TotalTime returns the sum of every successfully parsed response time.
func (a *Aggregator) TotalTime() float64 { return a.totalTime }

// URLCount returns the number of distinct URLs observed.
func (a *Aggregator) URLCount() int { return len(a.urls) }

// FailureRatio returns failed/total, 0 for an empty pass.
func (a *Aggregator) FailureRatio() float64 {
	if a.totalCount == 0 {
		return 0
	}
	return float64(a.failedCount) / float64(a.totalCount)
}

// Stats exposes the per-URL state for finalization. The map stays owned
// by the aggregator; finalization reads it without mutating.
func (a *Aggregator) Stats() map[string]*URLStats { return a.urls }
