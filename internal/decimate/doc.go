// Package decimate turns the mpdecimate analysis log into the segments of a
// clip worth keeping. It parses dropped-frame events out of ffmpeg's debug
// output, merges them into discard spans, inverts those against the clip
// duration, and renders the ffconcat playlist for the re-encode pass.
package decimate
