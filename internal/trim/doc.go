// Package trim runs the two-pass pipeline for a single clip: the mpdecimate
// analysis pass, segment computation from its log, the threshold decision,
// and the ffconcat-driven cut-and-encode pass. A run owns a temp workspace
// and a per-input lock; temp artifacts are removed on every exit path unless
// debug mode asks for retention, and the input file is only ever deleted
// after the output has been verified.
package trim
