package mkvmerge

import (
	"encoding/xml"
	"fmt"
	"os"
)

// GlobalTags carries the show-level metadata written into the container.
type GlobalTags struct {
	Show   string
	TMDBID int64
	Season int
}

// Matroska tag target levels.
const (
	targetCollection = 70
	targetSeason     = 60
)

type tagDocument struct {
	XMLName xml.Name `xml:"Tags"`
	Tags    []tagEntry
}

type tagEntry struct {
	XMLName xml.Name   `xml:"Tag"`
	Targets tagTargets `xml:"Targets"`
	Simple  []tagValue
}

type tagTargets struct {
	TargetTypeValue int `xml:"TargetTypeValue"`
}

type tagValue struct {
	XMLName xml.Name `xml:"Simple"`
	Name    string   `xml:"Name"`
	String  string   `xml:"String"`
}

// WriteGlobalTags writes a Matroska tags XML for mkvmerge --global-tags.
// The TMDB id follows the tv/<id> convention media servers look up.
func WriteGlobalTags(path string, tags GlobalTags) error {
	var collection []tagValue
	if tags.Show != "" {
		collection = append(collection, tagValue{Name: "TITLE", String: tags.Show})
	}
	if tags.TMDBID > 0 {
		collection = append(collection, tagValue{Name: "TMDB", String: fmt.Sprintf("tv/%d", tags.TMDBID)})
	}

	doc := tagDocument{}
	if len(collection) > 0 {
		doc.Tags = append(doc.Tags, tagEntry{
			Targets: tagTargets{TargetTypeValue: targetCollection},
			Simple:  collection,
		})
	}
	if tags.Season > 0 {
		doc.Tags = append(doc.Tags, tagEntry{
			Targets: tagTargets{TargetTypeValue: targetSeason},
			Simple:  []tagValue{{Name: "PART_NUMBER", String: fmt.Sprintf("%d", tags.Season)}},
		})
	}
	if len(doc.Tags) == 0 {
		return fmt.Errorf("no tags to write")
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	content := append([]byte(xml.Header), body...)
	content = append(content, '\n')
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}
