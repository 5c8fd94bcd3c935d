package img

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoImage = errors.New("no image file in directory")

var DefaultExts = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".webp"}

// FirstImage returns the absolute path of the first image file in dir,
// in lexical name order. Match is by extension, case-insensitive.
func FirstImage(dir string, exts []string) (string, error) {
	if len(exts) == 0 {
		exts = DefaultExts
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if !hasExt(name, exts) {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	return "", ErrNoImage
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
