package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks flag or config-file rules violated before any
	// subprocess starts.
	ErrConfiguration = errors.New("configuration error")
	// ErrParse marks an analysis log that was present but uninterpretable.
	ErrParse = errors.New("parse error")
	// ErrExternalTool marks a non-zero exit from ffmpeg or ffprobe.
	ErrExternalTool = errors.New("external tool error")
	// ErrFilesystem marks read/write/delete failures on the local filesystem.
	ErrFilesystem = errors.New("filesystem error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
