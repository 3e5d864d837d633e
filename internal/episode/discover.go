package episode

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

// Discover resolves the "all" selector by scanning the subtitle directory
// recursively for .ass files and taking the first digit run in each stem as
// the episode number. Filenames without digits are ignored. The heuristic
// assumes release-style names where the episode number leads any other
// numeric content; non-conforming names can misfire.
func Discover(subDir string) ([]int, error) {
	seen := make(map[int]struct{})
	err := filepath.WalkDir(subDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".ass") {
			return nil
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		match := digitRun.FindString(stem)
		if match == "" {
			return nil
		}
		if n, convErr := strconv.Atoi(match); convErr == nil {
			seen[n] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan subtitle directory: %w", err)
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("no valid episodes found in %q", subDir)
	}

	episodes := make([]int, 0, len(seen))
	for n := range seen {
		episodes = append(episodes, n)
	}
	sort.Ints(episodes)
	return episodes, nil
}
