// Package coordinator resolves source files through the compile cache.
package coordinator

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
	"go.trai.ch/stash/internal/engine/skip"
	"go.trai.ch/zerr"
)

// Result is the outcome of resolving a single source file.
type Result struct {
	Text   []byte
	Status domain.ResolveStatus
	// EntryPath is the cache entry consulted, empty when the cache was not used.
	EntryPath string
}

// Coordinator ties the skip heuristics, the content cache and the compiler
// together. It is safe for concurrent use.
type Coordinator struct {
	compiler   ports.Compiler
	store      ports.ContentCache
	hasher     ports.Hasher
	heuristics *skip.Heuristics
	registry   domain.ExtensionRegistry

	initMu      sync.Mutex
	initialized bool

	mu            sync.Mutex
	identity      domain.CompilerIdentity
	namespace     string
	cacheRoot     string
	cacheEnabled  bool
	namespacePath string
	seenDirs      map[string]struct{}

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithCacheRoot sets the initial cache root. Empty disables caching.
func WithCacheRoot(root string) Option {
	return func(c *Coordinator) {
		c.setCacheRoot(root)
	}
}

// WithIgnore replaces the vendored-code patterns used by the skip heuristics.
func WithIgnore(patterns []string) Option {
	return func(c *Coordinator) {
		c.heuristics = skip.New(c.registry, patterns)
	}
}

// New creates a Coordinator for compiler. It fails immediately with
// domain.ErrNoExtensions when the compiler declares no extensions. Caching is
// disabled until a root is supplied.
func New(compiler ports.Compiler, store ports.ContentCache, hasher ports.Hasher, opts ...Option) (*Coordinator, error) {
	identity := compiler.Identity()
	registry := domain.NewExtensionRegistry(identity.Extensions)
	if registry.Len() == 0 {
		return nil, domain.ErrNoExtensions
	}

	c := &Coordinator{
		compiler:   compiler,
		store:      store,
		hasher:     hasher,
		heuristics: skip.New(registry, nil),
		registry:   registry,
		identity:   identity,
		seenDirs:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Resolve returns the text for the file at path, reading the source from disk.
func (c *Coordinator) Resolve(ctx context.Context, path string) ([]byte, error) {
	res, err := c.ResolveUnit(ctx, domain.SourceUnit{Path: path})
	if err != nil {
		return nil, err
	}
	return res.Text, nil
}

// ResolveSource returns the text for path using the supplied source.
func (c *Coordinator) ResolveSource(ctx context.Context, path string, source []byte) ([]byte, error) {
	if source == nil {
		source = []byte{}
	}
	res, err := c.ResolveUnit(ctx, domain.SourceUnit{Path: path, Text: source})
	if err != nil {
		return nil, err
	}
	return res.Text, nil
}

// ResolveUnit resolves unit. A nil unit.Text is loaded from disk.
//
// Files rejected by the skip heuristics are returned unchanged. Otherwise the
// compiler is initialized on first use, the cache is consulted when enabled
// and the compiler runs on a miss. Compile and cache write failures propagate;
// cache read failures count as misses.
func (c *Coordinator) ResolveUnit(ctx context.Context, unit domain.SourceUnit) (Result, error) {
	path, err := filepath.Abs(unit.Path)
	if err != nil {
		return Result{}, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetPath.Error()), "path", unit.Path)
	}
	c.recordDir(filepath.Dir(path))

	source := unit.Text
	if source == nil {
		source, err = os.ReadFile(path) //nolint:gosec // Path is provided by the loader
		if err != nil {
			return Result{}, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
		}
	}

	if !c.heuristics.ShouldCompile(path, source) {
		return Result{Text: source, Status: domain.ResolveSkipped}, nil
	}

	if err := c.ensureInitialized(ctx); err != nil {
		return Result{}, err
	}

	nsPath, enabled, err := c.resolveNamespacePath()
	if err != nil {
		return Result{}, err
	}

	var entryPath string
	if enabled {
		entryPath = c.store.EntryPath(nsPath, source)
		if text, ok := c.store.Read(entryPath); ok {
			c.hits.Add(1)
			return Result{Text: text, Status: domain.ResolveCached, EntryPath: entryPath}, nil
		}
	}

	compiled, err := c.compiler.Compile(ctx, source, path, entryPath)
	if err != nil {
		return Result{}, zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "path", path)
	}
	c.misses.Add(1)

	if enabled {
		if err := c.store.Write(entryPath, compiled); err != nil {
			return Result{}, err
		}
	}

	return Result{Text: compiled, Status: domain.ResolveCompiled, EntryPath: entryPath}, nil
}

// SetCacheRoot points the cache at root; an empty root disables caching so
// every resolve recompiles without reading or writing entries. The memoized
// namespace path is dropped either way.
func (c *Coordinator) SetCacheRoot(root string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCacheRoot(root)
}

func (c *Coordinator) setCacheRoot(root string) {
	c.cacheRoot = root
	c.cacheEnabled = root != ""
	c.namespacePath = ""
}

// CacheRoot returns the current cache root and whether caching is enabled.
func (c *Coordinator) CacheRoot() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cacheRoot, c.cacheEnabled
}

// Namespace initializes the compiler if needed and returns the namespace digest.
func (c *Coordinator) Namespace(ctx context.Context) (string, error) {
	if err := c.ensureInitialized(ctx); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.namespaceDigest(), nil
}

// Identity returns the compiler identity, including its version once initialized.
func (c *Coordinator) Identity() domain.CompilerIdentity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Extensions returns the registered extensions.
func (c *Coordinator) Extensions() []string {
	return c.registry.Extensions()
}

// Accepts reports whether path has a registered extension and is outside the
// ignored vendor trees. It does not inspect the file contents.
func (c *Coordinator) Accepts(path string) bool {
	return c.registry.Matches(path) && !c.heuristics.IsIgnored(path)
}

// Stats returns a snapshot of the hit/miss counters.
func (c *Coordinator) Stats() domain.Stats {
	return domain.Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// SeenDirs returns the directories of every path passed to the coordinator, sorted.
func (c *Coordinator) SeenDirs() []string {
	c.mu.Lock()
	dirs := lo.Keys(c.seenDirs)
	c.mu.Unlock()
	slices.Sort(dirs)
	return dirs
}

// Handler returns a load handler that resolves a file and executes the
// result in host.
func (c *Coordinator) Handler(host ports.ModuleHost) domain.LoadHandler {
	return func(ctx context.Context, mod *domain.ModuleContext, path string) error {
		text, err := c.Resolve(ctx, path)
		if err != nil {
			return err
		}
		if err := host.Execute(ctx, mod, text); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrHostExecutionFailed.Error()), "path", path)
		}
		return nil
	}
}

// Register binds the handler for host to every registered extension in reg.
func (c *Coordinator) Register(reg ports.HandlerRegistry, host ports.ModuleHost) {
	handler := c.Handler(host)
	for _, ext := range c.registry.Extensions() {
		reg.Register(ext, handler)
	}
}

// ensureInitialized runs the compiler's one-shot initialization and records
// its version in the identity. A failed initialization is retried on the next call.
func (c *Coordinator) ensureInitialized(ctx context.Context) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	if c.initialized {
		return nil
	}

	version, err := c.compiler.Initialize(ctx)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCompilerInitFailed.Error())
	}

	c.mu.Lock()
	c.identity = c.identity.WithVersion(version)
	c.namespace = ""
	c.namespacePath = ""
	c.mu.Unlock()

	c.initialized = true
	return nil
}

// resolveNamespacePath returns the memoized namespace directory, creating it
// on first use after a root change.
func (c *Coordinator) resolveNamespacePath() (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cacheEnabled {
		return "", false, nil
	}
	if c.namespacePath != "" {
		return c.namespacePath, true, nil
	}

	path, err := c.store.NamespacePath(c.cacheRoot, c.namespaceDigest())
	if err != nil {
		return "", false, err
	}
	c.namespacePath = path
	return path, true, nil
}

// namespaceDigest must be called with c.mu held.
func (c *Coordinator) namespaceDigest() string {
	if c.namespace == "" {
		c.namespace = c.hasher.CanonicalDigest(c.identity.DigestValue())
	}
	return c.namespace
}

func (c *Coordinator) recordDir(dir string) {
	c.mu.Lock()
	c.seenDirs[dir] = struct{}{}
	c.mu.Unlock()
}
