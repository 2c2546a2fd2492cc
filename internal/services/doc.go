// Package services holds the error taxonomy shared by every stage of a trim
// run. Errors are tagged with sentinel markers so callers can classify a
// failure (configuration, parse, external tool, filesystem) without string
// matching.
package services
