package decimate

import (
	"math"
	"reflect"
	"testing"
)

func approxSpans(t *testing.T, got, want []Span) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i].Start-want[i].Start) > 1e-9 || math.Abs(got[i].End-want[i].End) > 1e-9 {
			t.Fatalf("span %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMergeDropsContiguous(t *testing.T) {
	// Three consecutive 25fps frames merge into a single discard span.
	got := MergeDrops([]float64{1.0, 1.04, 1.08}, 0.04, 0.01)
	approxSpans(t, got, []Span{{Start: 1.0, End: 1.12}})
}

func TestMergeDropsSplitsOnGap(t *testing.T) {
	got := MergeDrops([]float64{1.0, 1.04, 5.0}, 0.04, 0.01)
	approxSpans(t, got, []Span{{Start: 1.0, End: 1.08}, {Start: 5.0, End: 5.04}})
}

func TestMergeDropsSortedNonOverlapping(t *testing.T) {
	drops := []float64{9.4, 0.2, 0.24, 3.0, 3.08, 3.04, 0.28}
	spans := MergeDrops(drops, 0.04, 0.01)
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].End {
			t.Fatalf("spans overlap or unsorted: %v", spans)
		}
	}
	for _, span := range spans {
		if span.Length() <= 0 {
			t.Fatalf("degenerate span: %v", span)
		}
	}
}

func TestKeepSpansPartitionTimeline(t *testing.T) {
	drops := []float64{0.0, 0.04, 2.0, 2.04, 2.08, 7.5}
	const duration = 10.0
	discards := MergeDrops(drops, 0.04, 0.01)
	keeps := KeepSpans(discards, duration)

	// keep and discard spans together must cover [0, duration) exactly,
	// with no gaps and no overlaps.
	all := append(append([]Span(nil), discards...), keeps...)
	total := 0.0
	for _, span := range all {
		total += span.Length()
	}
	if math.Abs(total-duration) > 1e-9 {
		t.Fatalf("spans cover %v seconds of %v: discards=%v keeps=%v", total, duration, discards, keeps)
	}
	for _, keep := range keeps {
		if keep.Length() <= 0 {
			t.Fatalf("degenerate keep span: %v", keep)
		}
		for _, discard := range discards {
			if keep.Start < discard.End && discard.Start < keep.End {
				t.Fatalf("keep %v overlaps discard %v", keep, discard)
			}
		}
	}
}

func TestComputeKeepScenario(t *testing.T) {
	got := ComputeKeep([]float64{1.0, 1.04, 1.08}, 0.04, 0.01, 10.0)
	approxSpans(t, got, []Span{{Start: 0, End: 1.0}, {Start: 1.12, End: 10.0}})
}

func TestComputeKeepNoDrops(t *testing.T) {
	got := ComputeKeep(nil, 0.04, 0.01, 10.0)
	approxSpans(t, got, []Span{{Start: 0, End: 10.0}})
}

func TestComputeKeepIdempotent(t *testing.T) {
	drops := []float64{0.5, 0.54, 3.2, 8.0, 8.04}
	first := ComputeKeep(drops, 0.04, 0.01, 10.0)
	second := ComputeKeep(drops, 0.04, 0.01, 10.0)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("not idempotent: %v vs %v", first, second)
	}
}

func TestKeepSpansDiscardAtStart(t *testing.T) {
	got := ComputeKeep([]float64{0.0, 0.04}, 0.04, 0.01, 5.0)
	approxSpans(t, got, []Span{{Start: 0.08, End: 5.0}})
}

func TestKeepSpansDiscardAtEnd(t *testing.T) {
	// Discard runs exactly to the clip end; no zero-length tail allowed.
	got := ComputeKeep([]float64{4.92, 4.96}, 0.04, 0.01, 5.0)
	approxSpans(t, got, []Span{{Start: 0, End: 4.92}})
}

func TestKeepSpansDiscardBeyondEnd(t *testing.T) {
	got := ComputeKeep([]float64{4.98}, 0.04, 0.01, 5.0)
	approxSpans(t, got, []Span{{Start: 0, End: 4.98}})
}

func TestKeepSpansEverythingDropped(t *testing.T) {
	got := ComputeKeep([]float64{0.0}, 5.0, 0.01, 5.0)
	if len(got) != 0 {
		t.Fatalf("expected no keep spans, got %v", got)
	}
}

func TestKeepSpansUnknownDuration(t *testing.T) {
	got := ComputeKeep([]float64{1.0}, 0.04, 0.01, 0)
	if len(got) != 2 {
		t.Fatalf("expected two spans, got %v", got)
	}
	if !math.IsInf(got[1].End, 1) {
		t.Fatalf("final span should be open-ended, got %v", got[1])
	}
}
