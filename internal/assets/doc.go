// Package assets locates and assembles per-episode source material: glob
// search over the source directories, ASS subtitle parsing and layer
// merging (with OP/ED retiming), chapter extraction from marker lines, and
// font collection for container attachments.
package assets
