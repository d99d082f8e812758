// Package domain contains core domain types for the compile cache.
package domain

import "strings"

const (
	// DirPerm is the permission used for cache directories.
	DirPerm = 0o750
	// FilePerm is the permission used for cache entries.
	FilePerm = 0o644

	// DefaultCacheDir is the cache root used when none is configured, relative to the config file.
	DefaultCacheDir = ".stash/cache"

	// SourceMapMarker marks a file that already carries a source map.
	SourceMapMarker = "sourceMappingURL="

	// DefaultCompressionLevel selects the gzip library default.
	DefaultCompressionLevel = -1
	// MaxCompressionLevel is the slowest, smallest gzip level.
	MaxCompressionLevel = 9
)

// HashAlgorithm selects the hash used for namespace and source digests.
type HashAlgorithm string

const (
	// HashSHA1 is the default algorithm.
	HashSHA1 HashAlgorithm = "sha1"
	// HashSHA256 trades speed for a wider digest.
	HashSHA256 HashAlgorithm = "sha256"
	// HashXXHash is a fast non-cryptographic alternative.
	HashXXHash HashAlgorithm = "xxhash"
)

// ParseHashAlgorithm converts s to a HashAlgorithm. Empty input selects HashSHA1.
func ParseHashAlgorithm(s string) (HashAlgorithm, error) {
	switch HashAlgorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", HashSHA1:
		return HashSHA1, nil
	case HashSHA256:
		return HashSHA256, nil
	case HashXXHash:
		return HashXXHash, nil
	default:
		return "", ErrInvalidHashAlgorithm
	}
}

// SourceUnit is a single file handed to the coordinator.
type SourceUnit struct {
	Path string
	Text []byte
}
