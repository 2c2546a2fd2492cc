package decimate

import (
	"math"
	"strconv"
	"strings"
)

// Playlist renders the ffconcat v1.0 listing that drives the cut-and-encode
// pass: one entry per keep span with inpoint/outpoint trim marks. The
// outpoint is omitted for a span that runs to the end of the clip so the
// demuxer reads through to EOF instead of trusting a container duration
// estimate.
//
// ffconcat resolves file entries relative to the listing's own location, so
// inputPath must be absolute.
func Playlist(inputPath string, keeps []Span, duration float64) string {
	var b strings.Builder
	b.WriteString("ffconcat version 1.0\n")

	quoted := "'" + strings.ReplaceAll(inputPath, "'", `'\''`) + "'"
	for _, span := range keeps {
		b.WriteString("\nfile ")
		b.WriteString(quoted)
		b.WriteByte('\n')
		b.WriteString("inpoint ")
		b.WriteString(formatSeconds(span.Start))
		b.WriteByte('\n')
		if !openEnded(span, duration) {
			b.WriteString("outpoint ")
			b.WriteString(formatSeconds(span.End))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func openEnded(span Span, duration float64) bool {
	if math.IsInf(span.End, 1) {
		return true
	}
	return duration > 0 && span.End >= duration
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
