package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FontAttachment is a font file ready to attach to the output container.
type FontAttachment struct {
	Path     string
	MIMEType string
}

var fontMIMETypes = map[string]string{
	".ttf": "font/ttf",
	".otf": "font/otf",
	".ttc": "font/collection",
}

// CollectFonts gathers font files from the given directories, deduplicated
// by base name (first directory wins) and sorted by base name. Missing
// directories are skipped so a release without extra fonts needs no empty
// placeholder dir.
func CollectFonts(dirs ...string) ([]FontAttachment, error) {
	seen := make(map[string]struct{})
	var fonts []FontAttachment
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			mime, ok := fontMIMETypes[strings.ToLower(filepath.Ext(path))]
			if !ok {
				return nil
			}
			key := strings.ToLower(filepath.Base(path))
			if _, dup := seen[key]; dup {
				return nil
			}
			seen[key] = struct{}{}
			fonts = append(fonts, FontAttachment{Path: path, MIMEType: mime})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Slice(fonts, func(i, j int) bool {
		return filepath.Base(fonts[i].Path) < filepath.Base(fonts[j].Path)
	})
	return fonts, nil
}
