// Package host provides the caller-owned table of per-extension load handlers.
package host

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.HandlerRegistry = (*Registry)(nil)

// Registry maps file extensions to load handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]domain.LoadHandler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]domain.LoadHandler)}
}

// Register binds h to ext, replacing any previous handler.
func (r *Registry) Register(ext string, h domain.LoadHandler) {
	ext = domain.NormalizeExtension(ext)
	if ext == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[ext] = h
}

// Lookup returns the handler for the longest registered extension path ends with.
func (r *Registry) Lookup(path string) (domain.LoadHandler, bool) {
	lower := strings.ToLower(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		best    string
		handler domain.LoadHandler
	)
	for ext, h := range r.handlers {
		if strings.HasSuffix(lower, ext) && len(ext) > len(best) {
			best, handler = ext, h
		}
	}
	return handler, handler != nil
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	exts := lo.Keys(r.handlers)
	r.mu.RUnlock()
	slices.Sort(exts)
	return exts
}

// Load runs the handler registered for path within mod.
func (r *Registry) Load(ctx context.Context, mod *domain.ModuleContext, path string) error {
	h, ok := r.Lookup(path)
	if !ok {
		return zerr.With(domain.ErrNoHandler, "path", path)
	}
	return h(ctx, mod, path)
}
