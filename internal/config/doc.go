// Package config loads and validates mptrim's TOML configuration. Loading
// follows a fixed pipeline: start from Default(), overlay the file when one
// exists, normalize paths and string fields, then Validate. Callers receive a
// fully expanded config or an error, never a partially usable one.
package config
