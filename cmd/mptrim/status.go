package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusError
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

func writerIsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := "[OK]"
	if kind == statusError {
		statusText = "[MISSING]"
	}
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("  %-12s %s", label+":", statusText)
	if colorize {
		color := ansiGreen
		if kind == statusError {
			color = ansiRed
		}
		return color + base + ansiReset
	}
	return base
}
