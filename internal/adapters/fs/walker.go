// Package fs provides file system adapters for walking and hashing source files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/zerr"
)

// Walker provides file walking functionality for cache warm runs.
type Walker struct {
	ignores []string
}

// NewWalker creates a Walker that prunes entries whose base name matches one of ignores.
func NewWalker(ignores ...string) *Walker {
	return &Walker{ignores: ignores}
}

// WalkFiles yields every regular file under root accepted by keep, skipping
// version-control directories and ignored names. A nil keep accepts all files.
// Unreadable directories below root are skipped. A missing or unreadable root
// is yielded once as an error and ends the walk.
func (w *Walker) WalkFiles(root string, keep func(path string) bool) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return err
			}

			if skip, action := w.shouldSkip(d); skip {
				return action
			}

			if !d.Type().IsRegular() {
				return nil
			}
			if keep != nil && !keep(path) {
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", zerr.With(zerr.Wrap(err, domain.ErrWalkFailed.Error()), "path", root))
		}
	}
}

// shouldSkip reports whether d is excluded and the action WalkDir should take.
func (w *Walker) shouldSkip(d fs.DirEntry) (bool, error) {
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true, filepath.SkipDir
	}

	for _, ignore := range w.ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}
	return false, nil
}
