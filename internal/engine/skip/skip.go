// Package skip decides whether a source file should be handed to the compiler.
package skip

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/stash/internal/core/domain"
)

const (
	// minifiedSampleLen caps the length used by the minification heuristic.
	minifiedSampleLen = 1024
	// minifiedLineLen is the average line length above which source counts as minified.
	minifiedLineLen = 80
)

// DefaultIgnore matches vendored third-party code.
var DefaultIgnore = []string{"**/node_modules/**", "**/bower_components/**"}

// Heuristics decides whether a file should be compiled.
type Heuristics struct {
	registry domain.ExtensionRegistry
	ignore   []string
}

// New creates Heuristics accepting registry's extensions and rejecting paths
// matched by the ignore patterns. A nil ignore selects DefaultIgnore.
func New(registry domain.ExtensionRegistry, ignore []string) *Heuristics {
	if ignore == nil {
		ignore = DefaultIgnore
	}
	return &Heuristics{
		registry: registry,
		ignore:   ignore,
	}
}

// ShouldCompile reports whether path should be compiled. source may be nil
// when the text is not available; content checks are then skipped.
func (h *Heuristics) ShouldCompile(path string, source []byte) bool {
	if h.IsIgnored(path) {
		return false
	}
	if source != nil {
		if HasTrailingSourceMap(source) || IsMinified(source) {
			return false
		}
	}
	return h.registry.Matches(path)
}

// IsIgnored reports whether path lies under a vendored-code directory.
func (h *Heuristics) IsIgnored(path string) bool {
	slashed := strings.TrimPrefix(filepath.ToSlash(path), "/")
	for _, pattern := range h.ignore {
		if matched, err := doublestar.Match(pattern, slashed); err == nil && matched {
			return true
		}
	}
	return false
}

// HasTrailingSourceMap reports whether the final line of source carries a
// source-map marker. A marker followed by a trailing newline is not detected.
func HasTrailingSourceMap(source []byte) bool {
	lastLine := source[bytes.LastIndexByte(source, '\n')+1:]
	return bytes.Contains(lastLine, []byte(domain.SourceMapMarker))
}

// IsMinified reports whether source looks machine-compacted. Line length is
// sampled over at most the first 1024 bytes while newlines are counted across
// the whole source.
func IsMinified(source []byte) bool {
	length := min(len(source), minifiedSampleLen)

	newlines := bytes.Count(source, []byte{'\n'})
	if newlines == 0 {
		return length > minifiedLineLen
	}

	avgLineLength := float64(length) / float64(newlines)
	return avgLineLength > minifiedLineLen
}
