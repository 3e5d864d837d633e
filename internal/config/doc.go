// Package config loads, normalizes, and validates animux configuration.
//
// Configuration is TOML with nested sections per concern: [show] for the
// release identity, [paths] for source and working directories, [naming] for
// output templates, [tracks] for track metadata, [mux] for mkvmerge
// invocation settings, and [logging] for log output. Defaults come from
// Default(); Load layers a config file on top, expands ~ in every path, and
// rejects unusable values before any muxing starts.
package config
