package ports

import "hash"

// Hasher computes the digests that make up a cache key.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// New returns a fresh hash context.
	New() hash.Hash
	// CanonicalDigest returns the hex digest of a structured value, independent of map-key order.
	CanonicalDigest(v any) string
	// SourceDigest returns the hex digest of raw bytes.
	SourceDigest(b []byte) string
}
