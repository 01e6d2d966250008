package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// extPriority ranks formats when two files share a stem; higher wins.
var extPriority = map[string]int{
	".jpg":  1,
	".jpeg": 1,
	".tga":  2,
	".webp": 3,
	".png":  4,
}

// Index maps lowercase texture stems to filesystem paths.
// Formats with an alpha channel take priority over JPEG for the same stem.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex walks dir recursively for texture files.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		prio, ok := extPriority[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || prio > extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture reference, or ("", false).
// Only the stem of the reference is used, so "closet/denim.jpg" finds "denim.png".
func (idx *Index) ResolvePath(ref string) (string, bool) {
	ref = strings.ReplaceAll(ref, "\\", "/")
	base := filepath.Base(ref)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
