// Package mux drives the per-episode muxing sequence: locate the premux
// video, audio, and subtitle sources by episode code, merge the subtitle
// layers, extract chapters, collect fonts, and hand a finished job to
// mkvmerge. Failures are local to an episode; the batch always continues.
package mux
