// Package language maps between ISO 639-1 and ISO 639-2 language codes for
// mkvmerge track flags and display names for track titles.
package language

import "strings"

type entry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-2 primary (3-letter)
	alt3    string // ISO 639-2 alternate (e.g. "ger" vs "deu")
	display string
}

// Fansub-release languages; extend as needed.
var languages = []entry{
	{"ja", "jpn", "", "Japanese"},
	{"en", "eng", "", "English"},
	{"id", "ind", "", "Indonesian"},
	{"ms", "msa", "may", "Malay"},
	{"zh", "zho", "chi", "Chinese"},
	{"ko", "kor", "", "Korean"},
	{"th", "tha", "", "Thai"},
	{"vi", "vie", "", "Vietnamese"},
	{"es", "spa", "", "Spanish"},
	{"pt", "por", "", "Portuguese"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"it", "ita", "", "Italian"},
	{"ru", "rus", "", "Russian"},
	{"ar", "ara", "", "Arabic"},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	return nil
}

// ToISO3 converts a recognized language code to ISO 639-2 (3-letter).
// Unrecognized 3-letter codes pass through; anything else maps to "und".
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "und"
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if len(code) == 3 {
		return code
	}
	return "und"
}

// DisplayName returns a human-readable language name for any recognized
// code, or the uppercased code itself for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
