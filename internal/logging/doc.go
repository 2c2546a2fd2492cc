// Package logging builds the slog logger used throughout mptrim. Two
// handlers are available: a console handler with a fixed
// timestamp/level/component layout and key=value attributes, and a JSON
// handler for machine consumption.
package logging
