// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"github.com/vito/progrock/console"
	"go.trai.ch/stash/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	rec *progrock.Recorder
}

// New creates a Recorder that renders progress as plain text lines to w.
// Colors are dropped when NO_COLOR is set.
func New(w io.Writer) *Recorder {
	return NewRecorder(console.NewWriter(w))
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{rec: progrock.NewRecorder(w)}
}

// Record starts a vertex named after the unit of work, typically a source path.
// Vertex ids are derived from the name, so recording the same name twice
// updates the same vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	return progrock.ToContext(ctx, r.rec), &Vertex{name: name, vertex: v}
}

// Close flushes pending progress and closes the writer.
func (r *Recorder) Close() error {
	return r.rec.Close()
}
