package ports

import (
	"context"

	"go.trai.ch/stash/internal/core/domain"
)

// Compiler is a pluggable transformation backend.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Identity describes the backend: its extensions and arbitrary metadata.
	// It must declare at least one extension.
	Identity() domain.CompilerIdentity

	// Initialize prepares the backend and returns its version identifier.
	// It is invoked at most once, and only when a file needs compiling.
	Initialize(ctx context.Context) (string, error)

	// Compile transforms source. entryPath is the cache entry the result will be
	// stored at, or empty when caching is disabled.
	Compile(ctx context.Context, source []byte, path, entryPath string) ([]byte, error)

	// MimeType describes the compiled output.
	MimeType() string
}
