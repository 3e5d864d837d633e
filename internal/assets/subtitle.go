package assets

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// Event is one line from an ASS [Events] section.
type Event struct {
	Kind    string // Dialogue or Comment
	Layer   string
	Start   time.Duration
	End     time.Duration
	Style   string
	Name    string // actor field
	MarginL string
	MarginR string
	MarginV string
	Effect  string
	Text    string
}

// Subtitle is a parsed ASS document. Script info and style lines are kept
// verbatim; events are structured so merging can retime them.
type Subtitle struct {
	Info    []string
	Garbage []string
	Styles  []string
	Events  []Event
}

const eventFieldCount = 10

// LoadSubtitle parses an ASS file.
func LoadSubtitle(path string) (*Subtitle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open subtitle: %w", err)
	}
	defer file.Close()

	sub := &Subtitle{}
	section := ""
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimPrefix(trimmed, "\uFEFF")

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.ToLower(strings.Trim(trimmed, "[]"))
			continue
		}
		if trimmed == "" {
			continue
		}

		switch section {
		case "script info":
			sub.Info = append(sub.Info, trimmed)
		case "aegisub project garbage":
			sub.Garbage = append(sub.Garbage, trimmed)
		case "v4+ styles", "v4 styles":
			if strings.HasPrefix(trimmed, "Style:") {
				sub.Styles = append(sub.Styles, trimmed)
			}
		case "events":
			event, ok, parseErr := parseEvent(trimmed)
			if parseErr != nil {
				return nil, fmt.Errorf("%s: %w", path, parseErr)
			}
			if ok {
				sub.Events = append(sub.Events, event)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read subtitle: %w", err)
	}
	return sub, nil
}

func parseEvent(line string) (Event, bool, error) {
	var kind string
	switch {
	case strings.HasPrefix(line, "Dialogue:"):
		kind = "Dialogue"
	case strings.HasPrefix(line, "Comment:"):
		kind = "Comment"
	default:
		// Format lines and anything unrecognized.
		return Event{}, false, nil
	}

	rest := strings.TrimSpace(strings.TrimPrefix(line, kind+":"))
	fields := strings.SplitN(rest, ",", eventFieldCount)
	if len(fields) != eventFieldCount {
		return Event{}, false, fmt.Errorf("malformed event line: %q", line)
	}

	start, err := parseTimestamp(strings.TrimSpace(fields[1]))
	if err != nil {
		return Event{}, false, err
	}
	end, err := parseTimestamp(strings.TrimSpace(fields[2]))
	if err != nil {
		return Event{}, false, err
	}

	return Event{
		Kind:    kind,
		Layer:   strings.TrimSpace(fields[0]),
		Start:   start,
		End:     end,
		Style:   fields[3],
		Name:    fields[4],
		MarginL: fields[5],
		MarginR: fields[6],
		MarginV: fields[7],
		Effect:  fields[8],
		Text:    fields[9],
	}, true, nil
}

// parseTimestamp reads the ASS H:MM:SS.cc form.
func parseTimestamp(value string) (time.Duration, error) {
	var h, m, s, cs int
	if _, err := fmt.Sscanf(value, "%d:%d:%d.%d", &h, &m, &s, &cs); err != nil {
		return 0, fmt.Errorf("bad timestamp %q: %w", value, err)
	}
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(cs)*10*time.Millisecond, nil
}

func formatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := d / (10 * time.Millisecond)
	cs := total % 100
	seconds := (total / 100) % 60
	minutes := (total / 6000) % 60
	hours := total / 360000
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, cs)
}

// Merge appends another subtitle's styles and events. Styles already
// present by name are not duplicated; the base file's definition wins.
func (s *Subtitle) Merge(other *Subtitle) {
	known := make(map[string]struct{}, len(s.Styles))
	for _, style := range s.Styles {
		known[styleName(style)] = struct{}{}
	}
	for _, style := range other.Styles {
		if _, ok := known[styleName(style)]; ok {
			continue
		}
		known[styleName(style)] = struct{}{}
		s.Styles = append(s.Styles, style)
	}
	s.Events = append(s.Events, other.Events...)
}

func styleName(line string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "Style:"))
	if idx := strings.Index(rest, ","); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

// MergeGlob merges every ASS file matching pattern into the document. A
// pattern with no matches is a no-op, so optional layers can be merged
// unconditionally. Returns the merged paths.
func (s *Subtitle) MergeGlob(dir, pattern string) ([]string, error) {
	matches, err := GlobSearch(dir, pattern, false)
	if err != nil {
		return nil, err
	}
	for _, path := range matches {
		layer, err := LoadSubtitle(path)
		if err != nil {
			return nil, err
		}
		s.Merge(layer)
	}
	return matches, nil
}

// MergeSynced merges matching files after retiming them: the first merged
// event tagged sourceMarker is shifted onto the first base event tagged
// targetMarker, and every other merged event moves by the same offset.
// Markers match against the actor and effect fields. Used for OP/ED layers
// timed against their own zero point.
func (s *Subtitle) MergeSynced(dir, pattern, targetMarker, sourceMarker string) ([]string, error) {
	matches, err := GlobSearch(dir, pattern, false)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	target, ok := s.findMarker(targetMarker)
	if !ok {
		return nil, fmt.Errorf("sync marker %q not found in base subtitle", targetMarker)
	}

	for _, path := range matches {
		layer, err := LoadSubtitle(path)
		if err != nil {
			return nil, err
		}
		source, ok := layer.findMarker(sourceMarker)
		if !ok {
			return nil, fmt.Errorf("sync marker %q not found in %q", sourceMarker, path)
		}
		layer.shift(target - source)
		s.Merge(layer)
	}
	return matches, nil
}

func (s *Subtitle) findMarker(marker string) (time.Duration, bool) {
	for _, event := range s.Events {
		if strings.EqualFold(strings.TrimSpace(event.Name), marker) ||
			strings.EqualFold(strings.TrimSpace(event.Effect), marker) {
			return event.Start, true
		}
	}
	return 0, false
}

func (s *Subtitle) shift(offset time.Duration) {
	for i := range s.Events {
		s.Events[i].Start += offset
		s.Events[i].End += offset
	}
}

// CleanGarbage drops the Aegisub project garbage section and comment
// events; neither belongs in a release file.
func (s *Subtitle) CleanGarbage() {
	s.Garbage = nil
	kept := s.Events[:0]
	for _, event := range s.Events {
		if event.Kind == "Comment" {
			continue
		}
		kept = append(kept, event)
	}
	s.Events = kept
}

// WriteFile persists the document as a standard ASS file.
func (s *Subtitle) WriteFile(path string) error {
	var b strings.Builder
	b.WriteString("[Script Info]\n")
	for _, line := range s.Info {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(s.Garbage) > 0 {
		b.WriteString("\n[Aegisub Project Garbage]\n")
		for _, line := range s.Garbage {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	b.WriteString("\n[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	for _, style := range s.Styles {
		b.WriteString(style)
		b.WriteByte('\n')
	}
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, event := range s.Events {
		b.WriteString(event.Kind)
		b.WriteString(": ")
		b.WriteString(strings.Join([]string{
			event.Layer,
			formatTimestamp(event.Start),
			formatTimestamp(event.End),
			event.Style,
			event.Name,
			event.MarginL,
			event.MarginR,
			event.MarginV,
			event.Effect,
			event.Text,
		}, ","))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
