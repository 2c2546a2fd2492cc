// Package main hosts the mptrim CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into a single
// trim run plus supporting commands for run history, configuration
// scaffolding, and dependency checks. It centralizes configuration
// resolution, acceleration flag validation, and structured logging setup so
// the pipeline packages can focus on the two ffmpeg passes.
package main
