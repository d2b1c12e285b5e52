package analysis

import (
	"math"
	"testing"

	"log-analyzer/src/parser"
)

func TestAggregatorCounts(t *testing.T) {
	agg := NewAggregator()
	agg.AddOutcome(parser.Success("/a", 0.1))
	agg.AddOutcome(parser.Success("/a", 0.3))
	agg.AddOutcome(parser.Success("/b", 0.2))
	agg.AddOutcome(parser.Failure())

	if got := agg.TotalCount(); got != 4 {
		t.Errorf("TotalCount = %d, want 4", got)
	}
	if got := agg.FailedCount(); got != 1 {
		t.Errorf("FailedCount = %d, want 1", got)
	}
	if got := agg.URLCount(); got != 2 {
		t.Errorf("URLCount = %d, want 2", got)
	}
	if got := agg.TotalTime(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("TotalTime = %v, want 0.6", got)
	}

	a := agg.Stats()["/a"]
	if a == nil {
		t.Fatal("missing accumulator for /a")
	}
	if a.Count != 2 {
		t.Errorf("/a Count = %d, want 2", a.Count)
	}
	if math.Abs(a.TotalTime-0.4) > 1e-9 {
		t.Errorf("/a TotalTime = %v, want 0.4", a.TotalTime)
	}
	if len(a.Times) != 2 {
		t.Errorf("/a retained %d times, want 2", len(a.Times))
	}
}

func TestAggregatorFailureRatio(t *testing.T) {
	agg := NewAggregator()
	if got := agg.FailureRatio(); got != 0 {
		t.Errorf("empty FailureRatio = %v, want 0", got)
	}

	for i := 0; i < 6; i++ {
		agg.AddOutcome(parser.Failure())
	}
	for i := 0; i < 4; i++ {
		agg.AddOutcome(parser.Success("/a", 0.1))
	}
	if got := agg.FailureRatio(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("FailureRatio = %v, want 0.6", got)
	}
}

func TestAggregatorMerge(t *testing.T) {
	left := NewAggregator()
	left.AddOutcome(parser.Success("/a", 0.1))
	left.AddOutcome(parser.Success("/b", 0.2))
	left.AddOutcome(parser.Failure())

	right := NewAggregator()
	right.AddOutcome(parser.Success("/a", 0.3))
	right.AddOutcome(parser.Success("/c", 0.4))

	left.Merge(right)

	if got := left.TotalCount(); got != 5 {
		t.Errorf("TotalCount = %d, want 5", got)
	}
	if got := left.FailedCount(); got != 1 {
		t.Errorf("FailedCount = %d, want 1", got)
	}
	if got := left.URLCount(); got != 3 {
		t.Errorf("URLCount = %d, want 3", got)
	}
	if got := left.TotalTime(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("TotalTime = %v, want 1.0", got)
	}

	a := left.Stats()["/a"]
	if a.Count != 2 || len(a.Times) != 2 {
		t.Errorf("/a after merge: count=%d times=%v, want count=2 with 2 times", a.Count, a.Times)
	}
	if math.Abs(a.TotalTime-0.4) > 1e-9 {
		t.Errorf("/a TotalTime after merge = %v, want 0.4", a.TotalTime)
	}
}

// Merged shards must be indistinguishable from one sequential pass.
func TestAggregatorMergeEquivalence(t *testing.T) {
	outcomes := []parser.Outcome{
		parser.Success("/a", 0.1),
		parser.Success("/b", 0.2),
		parser.Failure(),
		parser.Success("/a", 0.3),
		parser.Success("/c", 0.4),
		parser.Failure(),
	}

	sequential := NewAggregator()
	for _, o := range outcomes {
		sequential.AddOutcome(o)
	}

	shardA, shardB := NewAggregator(), NewAggregator()
	for i, o := range outcomes {
		if i%2 == 0 {
			shardA.AddOutcome(o)
		} else {
			shardB.AddOutcome(o)
		}
	}
	shardA.Merge(shardB)

	if shardA.TotalCount() != sequential.TotalCount() ||
		shardA.FailedCount() != sequential.FailedCount() ||
		shardA.URLCount() != sequential.URLCount() {
		t.Errorf("merged counters differ from sequential pass")
	}
	if math.Abs(shardA.TotalTime()-sequential.TotalTime()) > 1e-9 {
		t.Errorf("merged TotalTime = %v, sequential = %v", shardA.TotalTime(), sequential.TotalTime())
	}
	for url, want := range sequential.Stats() {
		got := shardA.Stats()[url]
		if got == nil || got.Count != want.Count || len(got.Times) != len(want.Times) {
			t.Errorf("merged state for %s differs from sequential", url)
		}
	}
}
