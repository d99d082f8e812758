package ports

import (
	"context"
	"io"

	"go.trai.ch/stash/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records progress for units of work.
type Telemetry interface {
	// Record starts a new vertex with the given name.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes the recording session.
	Close() error
}

// Vertex is a single unit of recorded work.
type Vertex interface {
	// Stdout returns a writer for the vertex's standard output.
	Stdout() io.Writer
	// Stderr returns a writer for the vertex's error output.
	Stderr() io.Writer
	// Log records a message against the vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex finished, failed when err is non-nil.
	Complete(err error)
	// Cached marks the vertex as served from cache.
	Cached()
}
