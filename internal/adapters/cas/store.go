// Package cas implements the content-addressable store for compiled output.
package cas

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/gzip"
	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentCache = (*Store)(nil)

// DefaultPackaged matches cache roots inside packaged application archives,
// where directories cannot be created.
var DefaultPackaged = []string{"**/*.asar", "**/*.asar/**"}

// Store implements ports.ContentCache with one gzip file per entry laid out as
// root/<namespace>/<source digest>. Entries are never evicted.
type Store struct {
	hasher   ports.Hasher
	packaged []string
	level    int
}

// Option configures a Store.
type Option func(*Store)

// WithPackaged sets the doublestar patterns identifying read-only cache roots.
func WithPackaged(patterns ...string) Option {
	return func(s *Store) {
		s.packaged = patterns
	}
}

// WithLevel sets the gzip compression level.
func WithLevel(level int) Option {
	return func(s *Store) {
		s.level = level
	}
}

// NewStore creates a Store naming entries with hasher's source digest.
func NewStore(hasher ports.Hasher, opts ...Option) *Store {
	s := &Store{
		hasher:   hasher,
		packaged: DefaultPackaged,
		level:    gzip.DefaultCompression,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NamespacePath returns root/namespace, creating the directory unless root is packaged.
func (s *Store) NamespacePath(root, namespace string) (string, error) {
	path := filepath.Join(root, namespace)
	if s.isPackaged(root) {
		return path, nil
	}

	if err := os.MkdirAll(path, domain.DirPerm); err != nil && !errors.Is(err, fs.ErrExist) {
		return "", zerr.With(zerr.Wrap(err, domain.ErrNamespaceCreateFailed.Error()), "path", path)
	}
	return path, nil
}

// EntryPath returns the path of the entry for source under namespacePath.
func (s *Store) EntryPath(namespacePath string, source []byte) string {
	return filepath.Join(namespacePath, s.hasher.SourceDigest(source))
}

// Read returns the entry at entryPath. Gzip data is decompressed; anything
// else is returned as stored. Every failure is reported as a miss.
func (s *Store) Read(entryPath string) ([]byte, bool) {
	data, err := os.ReadFile(entryPath) //nolint:gosec // Path is derived from digests under the cache root
	if err != nil {
		return nil, false
	}

	if !domain.IsGzipped(data) {
		return data, true
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	defer zr.Close() //nolint:errcheck // Reader over memory

	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	return text, true
}

// Write compresses text and atomically publishes it at entryPath. A namespace
// directory removed since it was resolved is recreated unless it is packaged.
func (s *Store) Write(entryPath string, text []byte) error {
	data, err := s.compress(text)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCompressFailed.Error()), "path", entryPath)
	}

	err = writeAtomic(entryPath, data)
	if errors.Is(err, fs.ErrNotExist) {
		dir := filepath.Dir(entryPath)
		if s.isPackaged(dir) {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", entryPath)
		}
		if mkErr := os.MkdirAll(dir, domain.DirPerm); mkErr != nil {
			return zerr.With(zerr.Wrap(mkErr, domain.ErrNamespaceCreateFailed.Error()), "path", dir)
		}
		err = writeAtomic(entryPath, data)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", entryPath)
	}
	return nil
}

func (s *Store) compress(text []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, s.level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(text); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) isPackaged(root string) bool {
	slashed := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(root)), "/")
	for _, pattern := range s.packaged {
		if matched, err := doublestar.Match(pattern, slashed); err == nil && matched {
			return true
		}
	}
	return false
}

// writeAtomic writes data to a temp file beside path and renames it into place,
// so concurrent readers never observe a partial entry.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, domain.FilePerm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
