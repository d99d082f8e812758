package domain

import (
	"slices"
	"strings"
)

// VersionKey is the metadata key under which the compiler's version is recorded.
const VersionKey = "version"

// CompilerIdentity describes a transformation backend. Its canonical digest
// forms the cache namespace, so it must not change once observed.
type CompilerIdentity struct {
	Extensions []string
	Metadata   map[string]any
}

// WithVersion returns a copy of the identity with version recorded in its metadata.
// The receiver's metadata map is left untouched.
func (c CompilerIdentity) WithVersion(version string) CompilerIdentity {
	meta := make(map[string]any, len(c.Metadata)+1)
	for k, v := range c.Metadata {
		meta[k] = v
	}
	meta[VersionKey] = version
	return CompilerIdentity{
		Extensions: slices.Clone(c.Extensions),
		Metadata:   meta,
	}
}

// DigestValue returns the structured value whose canonical digest names the namespace.
func (c CompilerIdentity) DigestValue() map[string]any {
	exts := make([]any, 0, len(c.Extensions))
	for _, ext := range NewExtensionRegistry(c.Extensions).Extensions() {
		exts = append(exts, ext)
	}
	meta := c.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return map[string]any{
		"extensions": exts,
		"metadata":   meta,
	}
}

// ExtensionRegistry is the immutable set of file extensions a compiler accepts.
type ExtensionRegistry struct {
	exts []string
}

// NewExtensionRegistry normalizes extensions to lowercase, dot-prefixed form
// and removes duplicates and empty entries.
func NewExtensionRegistry(exts []string) ExtensionRegistry {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if norm := NormalizeExtension(ext); norm != "" {
			out = append(out, norm)
		}
	}
	slices.Sort(out)
	return ExtensionRegistry{exts: slices.Compact(out)}
}

// NormalizeExtension lowercases ext and ensures a leading dot.
// Blank input yields an empty string.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Extensions returns the registered extensions in sorted order.
func (r ExtensionRegistry) Extensions() []string {
	return slices.Clone(r.exts)
}

// Len reports the number of registered extensions.
func (r ExtensionRegistry) Len() int {
	return len(r.exts)
}

// Matches reports whether the lowercase form of path ends with a registered extension.
func (r ExtensionRegistry) Matches(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range r.exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
