package trim

import (
	"mptrim/internal/config"
	"mptrim/internal/hwaccel"
)

// Job is the immutable configuration for one trim run, assembled once from
// parsed flags and config and passed through every stage unchanged.
type Job struct {
	// InputPath is the absolute path of the clip to trim.
	InputPath string
	// OutputPath is the absolute destination for the re-encoded clip.
	OutputPath string

	// Filter is the mpdecimate parameter string for the analysis pass.
	Filter string
	// FrameDuration and MergeTolerance control drop-event merging, in
	// seconds.
	FrameDuration  float64
	MergeTolerance float64

	Accel  hwaccel.Selection
	Encode config.Encode

	// KeepOriginal retains the input file after a successful run.
	KeepOriginal bool
	// SkipThreshold is the minimum keep-span count required to re-encode.
	// Fewer spans means the cut would not remove anything worthwhile.
	SkipThreshold int
	// Debug keeps every artifact and raises ffmpeg verbosity on both
	// passes.
	Debug bool
}
