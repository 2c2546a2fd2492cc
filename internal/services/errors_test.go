package services_test

import (
	"errors"
	"strings"
	"testing"

	"mptrim/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	underlying := errors.New("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "decimate", "run ffmpeg", "analysis pass failed", underlying)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !errors.Is(err, underlying) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
	for _, want := range []string{"decimate", "run ffmpeg", "analysis pass failed"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("message missing %q: %s", want, err)
		}
	}
}

func TestWrapNilMarkerDefaults(t *testing.T) {
	err := services.Wrap(nil, "trim", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("nil marker should default to external tool, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := services.Wrap(services.ErrFilesystem, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %s", err)
	}
}
