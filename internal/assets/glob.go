package assets

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// GlobSearch returns the paths under dir whose base names match pattern,
// sorted lexicographically for deterministic processing order. With
// recursive set, subdirectories are searched too.
func GlobSearch(dir, pattern string, recursive bool) ([]string, error) {
	if !recursive {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		sort.Strings(matches)
		return matches, nil
	}

	var matches []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ok, matchErr := filepath.Match(pattern, filepath.Base(path))
		if matchErr != nil {
			return fmt.Errorf("glob %q: %w", pattern, matchErr)
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
