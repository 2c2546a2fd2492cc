package trim

// State tracks where a run is in its lifecycle. A run moves from Idle
// through Analyzing to either Skipped or Cutting, then Finalizing and Done;
// any failure jumps straight to Failed.
type State string

const (
	StateIdle       State = "idle"
	StateAnalyzing  State = "analyzing"
	StateSkipped    State = "skipped"
	StateCutting    State = "cutting"
	StateFinalizing State = "finalizing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)
