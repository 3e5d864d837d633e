// Package logging builds the slog loggers used across animux.
//
// Two output formats are supported: a compact console format for interactive
// use (colored when the output is a terminal) and JSON for machine
// consumption. Attr helpers keep call sites free of direct slog imports.
package logging
