package decimate

import (
	"math"
	"strings"
	"testing"
)

func TestPlaylist(t *testing.T) {
	keeps := []Span{{Start: 0, End: 1.0}, {Start: 1.12, End: 10.0}}
	got := Playlist("/videos/clip.mkv", keeps, 10.0)

	want := "ffconcat version 1.0\n" +
		"\nfile '/videos/clip.mkv'\n" +
		"inpoint 0\n" +
		"outpoint 1\n" +
		"\nfile '/videos/clip.mkv'\n" +
		"inpoint 1.12\n"
	if got != want {
		t.Fatalf("playlist mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestPlaylistInteriorOutpoints(t *testing.T) {
	keeps := []Span{{Start: 0.5, End: 2.25}, {Start: 3, End: 7.5}, {Start: 8, End: 10}}
	got := Playlist("/v/c.mkv", keeps, 10.0)
	if strings.Count(got, "outpoint") != 2 {
		t.Fatalf("expected outpoints for all but the final span:\n%s", got)
	}
	if !strings.Contains(got, "outpoint 2.25\n") || !strings.Contains(got, "outpoint 7.5\n") {
		t.Fatalf("missing interior outpoints:\n%s", got)
	}
}

func TestPlaylistOpenEndedSpan(t *testing.T) {
	keeps := []Span{{Start: 0, End: math.Inf(1)}}
	got := Playlist("/v/c.mkv", keeps, 0)
	if strings.Contains(got, "outpoint") {
		t.Fatalf("open-ended span must not emit outpoint:\n%s", got)
	}
}

func TestPlaylistQuotesApostrophes(t *testing.T) {
	got := Playlist("/videos/it's a clip.mkv", []Span{{Start: 0, End: 1}}, 2.0)
	if !strings.Contains(got, `file '/videos/it'\''s a clip.mkv'`) {
		t.Fatalf("apostrophe not escaped:\n%s", got)
	}
}
