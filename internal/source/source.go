// Package source reads org files from the local file system. It is
// read-only: documents are edited by external tools and only consumed
// here.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dr-yst/org-x/internal/apperr"
	"github.com/dr-yst/org-x/internal/checksum"
)

// FileMeta describes one org file on disk.
type FileMeta struct {
	Path     string
	Checksum string
	ModTime  time.Time
}

// Relevant reports whether a path names an org file worth parsing: the
// extension must be exactly ".org" and the base name must not start with
// a dot. "notes.org~" and ".hidden.org" are both irrelevant.
func Relevant(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return filepath.Ext(base) == ".org"
}

// List walks root and returns metadata for every relevant org file,
// with absolute paths. A file root returns just that file when relevant.
func List(root string) ([]FileMeta, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("source: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &apperr.FileError{Path: abs, Err: err}
	}

	if !info.IsDir() {
		if !Relevant(abs) {
			return nil, nil
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			return nil, &apperr.FileError{Path: abs, Err: err}
		}
		return []FileMeta{{Path: abs, Checksum: checksum.Sum(data), ModTime: info.ModTime()}}, nil
	}

	var out []FileMeta
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			// Skip hidden directories entirely.
			if p != abs && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !Relevant(p) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		out = append(out, FileMeta{Path: p, Checksum: checksum.Sum(data), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: list %s: %w", root, err)
	}
	return out, nil
}

// Read returns the raw content of an org file.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apperr.FileError{Path: path, Err: err}
	}
	return data, nil
}
