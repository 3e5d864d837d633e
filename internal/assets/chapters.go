package assets

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Chapter is one entry extracted from a subtitle document.
type Chapter struct {
	Start time.Duration
	Name  string
}

// chapterEffect tags the dialogue lines timers use as chapter markers.
const chapterEffect = "chapter"

// Chapters extracts chapter markers from the document: every event whose
// effect field is "chapter" yields a chapter at the event start, named by
// the actor field (falling back to the event text). Results are sorted by
// start time.
func (s *Subtitle) Chapters() []Chapter {
	var chapters []Chapter
	for _, event := range s.Events {
		if !strings.EqualFold(strings.TrimSpace(event.Effect), chapterEffect) {
			continue
		}
		name := strings.TrimSpace(event.Name)
		if name == "" {
			name = strings.TrimSpace(event.Text)
		}
		if name == "" {
			continue
		}
		chapters = append(chapters, Chapter{Start: event.Start, Name: name})
	}
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].Start < chapters[j].Start })
	return chapters
}

// WriteSimpleChapters writes chapters in the OGM simple format mkvmerge
// accepts via --chapters.
func WriteSimpleChapters(chapters []Chapter, path string) error {
	if len(chapters) == 0 {
		return fmt.Errorf("no chapters to write")
	}
	var b strings.Builder
	for i, chapter := range chapters {
		fmt.Fprintf(&b, "CHAPTER%02d=%s\n", i+1, formatChapterTimestamp(chapter.Start))
		fmt.Fprintf(&b, "CHAPTER%02dNAME=%s\n", i+1, chapter.Name)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// formatChapterTimestamp renders HH:MM:SS.mmm as the OGM format requires.
func formatChapterTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d",
		ms/3600000, (ms/60000)%60, (ms/1000)%60, ms%1000)
}
