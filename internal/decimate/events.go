package decimate

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strconv"
)

// dropLine matches the mpdecimate diagnostic lines ffmpeg emits at debug
// loglevel. The shape is an external text contract tied to the engine
// version:
//
//	[Parsed_mpdecimate_0 @ 0x...] lo:... drop pts:123 pts_time:4.92 drop_count:3
var dropLine = regexp.MustCompile(
	`^.*` +
		` (keep|drop)` +
		` pts:\d+` +
		` pts_time:(-?\d+(?:\.\d+)?)` +
		` drop_count:-?\d+` +
		`(?: keep_count:-?\d+)?$`)

// ErrEmptyLog reports an analysis log with no content at all, which means
// the analysis pass produced nothing to parse rather than a clip with no
// duplicate frames.
var ErrEmptyLog = errors.New("analysis log is empty")

// ParseDropEvents scans the analysis pass log and returns the pts_time of
// every dropped frame, in log order. Lines that do not match the
// mpdecimate shape are skipped; parsing is best-effort by design because
// the log interleaves unrelated ffmpeg diagnostics.
func ParseDropEvents(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var drops []float64
	sawAnything := false
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			sawAnything = true
		}
		match := dropLine.FindStringSubmatch(line)
		if match == nil || match[1] != "drop" {
			continue
		}
		ts, err := strconv.ParseFloat(match[2], 64)
		if err != nil || ts < 0 {
			continue
		}
		drops = append(drops, ts)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawAnything {
		return nil, ErrEmptyLog
	}
	return drops, nil
}
