// Package naming renders output filenames and MKV titles from the
// configured templates.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Spec carries the values substituted into a name template.
type Spec struct {
	Show    string
	Episode string // zero-padded episode code, e.g. "02"
	Version int
	Flag    string
	CRC32   string // empty until the output file exists
}

// VersionSuffix returns the "vN" suffix for a release version. Version 1 is
// the unmarked default and yields an empty string.
func VersionSuffix(version int) string {
	if version <= 1 {
		return ""
	}
	return fmt.Sprintf("v%d", version)
}

// Render substitutes the spec into a template. Recognized placeholders:
// $flag$, $show$, $ep$, $ver$, $crc32$.
func Render(template string, spec Spec) string {
	replacer := strings.NewReplacer(
		"$flag$", spec.Flag,
		"$show$", spec.Show,
		"$ep$", spec.Episode,
		"$ver$", VersionSuffix(spec.Version),
		"$crc32$", spec.CRC32,
	)
	return strings.TrimSpace(replacer.Replace(template))
}

// SanitizeFileName strips characters that are unsafe in file names on
// common filesystems. Square brackets survive: release names depend on them.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-",
		"*", "", "?", "", "\"", "", "<", "", ">", "", "|", "",
	)
	return strings.TrimSpace(replacer.Replace(name))
}

// DeriveShowTitle produces a show title from a directory path when no title
// is configured. Separator runs collapse to single spaces and the result is
// title-cased.
func DeriveShowTitle(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == string(filepath.Separator) {
		return "Unknown Show"
	}

	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Unknown Show"
	}
	return cases.Title(language.Und).String(title)
}

// EpisodeCode formats an episode number the way source files are named:
// zero-padded to two digits.
func EpisodeCode(episode int) string {
	return fmt.Sprintf("%02d", episode)
}
