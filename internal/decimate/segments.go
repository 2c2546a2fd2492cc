package decimate

import (
	"math"
	"sort"
)

// Span is a half-open [Start, End) time interval in seconds.
type Span struct {
	Start float64
	End   float64
}

// Length returns the span duration in seconds.
func (s Span) Length() float64 {
	return s.End - s.Start
}

// MergeDrops folds ordered drop-event timestamps into discard spans. Each
// event discards one frame of frameDuration seconds; an event that lands
// within frameDuration+tolerance of the current span's end extends it,
// anything further starts a new span. The result is sorted and
// non-overlapping.
func MergeDrops(drops []float64, frameDuration, tolerance float64) []Span {
	if len(drops) == 0 {
		return nil
	}

	sorted := append([]float64(nil), drops...)
	sort.Float64s(sorted)

	spans := make([]Span, 0, 4)
	current := Span{Start: sorted[0], End: sorted[0] + frameDuration}
	for _, ts := range sorted[1:] {
		if ts <= current.End+tolerance {
			if end := ts + frameDuration; end > current.End {
				current.End = end
			}
			continue
		}
		spans = append(spans, current)
		current = Span{Start: ts, End: ts + frameDuration}
	}
	return append(spans, current)
}

// KeepSpans inverts discard spans against [0, duration). A non-positive
// duration means the clip length is unknown; the final span is then
// open-ended (End is +Inf). Discards touching either boundary never yield
// zero-length or negative keep spans.
func KeepSpans(discards []Span, duration float64) []Span {
	end := duration
	if end <= 0 {
		end = math.Inf(1)
	}

	keeps := make([]Span, 0, len(discards)+1)
	cursor := 0.0
	for _, discard := range discards {
		if discard.Start >= end {
			break
		}
		if discard.Start > cursor {
			keeps = append(keeps, Span{Start: cursor, End: discard.Start})
		}
		if discard.End > cursor {
			cursor = discard.End
		}
	}
	if cursor < end {
		keeps = append(keeps, Span{Start: cursor, End: end})
	}
	return keeps
}

// ComputeKeep runs the full segment computation: merge drop events, then
// invert against the clip duration.
func ComputeKeep(drops []float64, frameDuration, tolerance, duration float64) []Span {
	return KeepSpans(MergeDrops(drops, frameDuration, tolerance), duration)
}
