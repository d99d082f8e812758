package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex records the resolution of one source file on a progrock vertex.
type Vertex struct {
	name   string
	vertex *progrock.VertexRecorder
}

// Stdout returns the vertex's output stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns the vertex's error stream.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log writes msg to the vertex. Warnings and errors go to the error stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level, msg)
}

// Complete finishes the vertex. A failure is tagged with the vertex name.
func (v *Vertex) Complete(err error) {
	if err != nil {
		err = zerr.With(err, "vertex", v.name)
	}
	v.vertex.Done(err)
}

// Cached marks the resolve as served from the cache.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
