// Package history records the outcome of every episode attempt in a local
// SQLite database so past batch runs can be inspected from the CLI.
package history
