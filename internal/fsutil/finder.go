// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
)

// ErrNoExtension is returned when FindFilesByExtension is called without an
// extension to match.
var ErrNoExtension = errors.New("extension must not be empty")

// FindFilesByExtension recursively searches the given root path for all files
// whose extension is ext (".hcl", ".yaml"). Paths are returned sorted so that
// callers merging the files see a stable order.
func FindFilesByExtension(rootPath string, ext string) ([]string, error) {
	if ext == "" {
		return nil, ErrNoExtension
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}
