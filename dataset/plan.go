package dataset

import (
	"fmt"
	"os"
	"path/filepath"
)

type class struct {
	name  string
	files []string
}

// plan lists the class directories under root in lexicographic order together with
// their files. Class directories that cannot be read are logged and left out.
func (e *Extractor) plan(root string) ([]class, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dataset root: %w", err)
	}

	var classes []class
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		if !isDir(entry, dir) {
			continue
		}
		files, err := os.ReadDir(dir)
		if err != nil {
			e.log.WithError(err).WithField("class", entry.Name()).Error("reading class directory failed")
			continue
		}

		c := class{name: entry.Name()}
		for _, f := range files {
			path := filepath.Join(dir, f.Name())
			if isDir(f, path) {
				continue
			}
			c.files = append(c.files, path)
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// isDir follows symlinks. Entries that cannot be stat'ed are not directories;
// the loader reports them.
func isDir(entry os.DirEntry, path string) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
