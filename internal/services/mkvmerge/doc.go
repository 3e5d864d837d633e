// Package mkvmerge wraps the mkvmerge CLI: it turns a Job (video, tracks,
// attachments, chapters) into an argument list, runs the binary with a
// timeout, and verifies an output file was produced.
package mkvmerge
