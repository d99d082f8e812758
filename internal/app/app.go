// Package app implements the application layer for stash.
package app

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.trai.ch/stash/internal/adapters/cas"
	"go.trai.ch/stash/internal/adapters/fs"
	"go.trai.ch/stash/internal/adapters/host"
	"go.trai.ch/stash/internal/adapters/shell"
	"go.trai.ch/stash/internal/adapters/telemetry"
	"go.trai.ch/stash/internal/adapters/watcher"
	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
	"go.trai.ch/stash/internal/engine/coordinator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	telemetry    ports.Telemetry
	walker       *fs.Walker
	handlers     *host.Registry
	newWatcher   ports.WatcherFactory
	debounce     time.Duration
	stdout       io.Writer
	stderr       io.Writer
}

// New creates a new App instance. A nil tel records nothing.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	tel ports.Telemetry,
	walker *fs.Walker,
	handlers *host.Registry,
	newWatcher ports.WatcherFactory,
) *App {
	if tel == nil {
		tel = telemetry.NewNoOp()
	}
	return &App{
		configLoader: loader,
		logger:       log,
		telemetry:    tel,
		walker:       walker,
		handlers:     handlers,
		newWatcher:   newWatcher,
		debounce:     watcher.DefaultDebounceWindow,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput sets the streams executed modules write to.
// This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// Options are the settings shared by every command.
type Options struct {
	// ConfigPath is a stash.yaml file or a directory to search from. Defaults to ".".
	ConfigPath string
	// CacheDir overrides the configured cache directory.
	CacheDir string
	// NoCache disables reading and writing cache entries.
	NoCache bool
}

// WarmOptions configuration for the Warm method.
type WarmOptions struct {
	Options
	// Dir is the tree to walk. Defaults to the configuration root.
	Dir string
	// Jobs bounds the number of files resolved concurrently. Defaults to the CPU count.
	Jobs int
	// Watch keeps recompiling changed files after the initial pass until the context ends.
	Watch bool
}

// Info describes the effective cache setup.
type Info struct {
	Root       string
	Compiler   string
	Version    string
	Extensions []string
	MimeType   string
	Hash       domain.HashAlgorithm
	CacheDir   string
	Enabled    bool
	Namespace  string
}

// session holds the components built from one loaded configuration.
type session struct {
	cfg      *domain.Config
	compiler *shell.Compiler
	coord    *coordinator.Coordinator
	host     *shell.Host
}

// open loads the configuration and assembles the cache pipeline for it.
func (a *App) open(opts Options) (*session, error) {
	path := opts.ConfigPath
	if path == "" {
		path = "."
	}

	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.CacheDir != "" {
		dir, absErr := filepath.Abs(opts.CacheDir)
		if absErr != nil {
			return nil, zerr.With(zerr.Wrap(absErr, domain.ErrFailedToGetPath.Error()), "path", opts.CacheDir)
		}
		cfg.Cache.Dir = dir
		cfg.Cache.Enabled = true
	}
	if opts.NoCache {
		cfg.Cache.Enabled = false
	}

	hasher, err := fs.NewHasher(cfg.Cache.Hash)
	if err != nil {
		return nil, err
	}

	storeOpts := []cas.Option{cas.WithLevel(cfg.Cache.Level)}
	if cfg.Cache.Packaged != nil {
		storeOpts = append(storeOpts, cas.WithPackaged(cfg.Cache.Packaged...))
	}

	compiler, err := shell.NewCompiler(cfg.Compiler, a.logger)
	if err != nil {
		return nil, err
	}

	coordOpts := []coordinator.Option{coordinator.WithCacheRoot(cfg.CacheRoot())}
	if cfg.Skip.Ignore != nil {
		coordOpts = append(coordOpts, coordinator.WithIgnore(cfg.Skip.Ignore))
	}

	coord, err := coordinator.New(compiler, cas.NewStore(hasher, storeOpts...), hasher, coordOpts...)
	if err != nil {
		return nil, zerr.With(err, "compiler", cfg.Compiler.Name)
	}

	return &session{
		cfg:      cfg,
		compiler: compiler,
		coord:    coord,
		host:     shell.NewHost(cfg.Host, a.stdout, a.stderr),
	}, nil
}

// Resolve returns the text for the file at path, compiling it on a cache miss.
func (a *App) Resolve(ctx context.Context, path string, opts Options) ([]byte, error) {
	s, err := a.open(opts)
	if err != nil {
		return nil, err
	}
	return s.coord.Resolve(ctx, path)
}

// Run resolves the file at path through the handler registry and executes the
// result in the configured host with args.
func (a *App) Run(ctx context.Context, path string, args []string, opts Options) error {
	s, err := a.open(opts)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFailedToGetPath.Error()), "path", path)
	}

	s.coord.Register(a.handlers, s.host)

	return a.handlers.Load(ctx, &domain.ModuleContext{
		Path: abs,
		Dir:  filepath.Dir(abs),
		Args: args,
	}, abs)
}

// Warm resolves every compilable file below the warm directory so later runs
// hit the cache. The first failure cancels the remaining work.
func (a *App) Warm(ctx context.Context, opts WarmOptions) (domain.Stats, error) {
	s, err := a.open(opts.Options)
	if err != nil {
		return domain.Stats{}, err
	}

	cacheRoot, enabled := s.coord.CacheRoot()
	if !enabled {
		a.logger.Warn("cache is disabled, warm results will not be kept")
	}

	root := opts.Dir
	if root == "" {
		root = s.cfg.Root
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return domain.Stats{}, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetPath.Error()), "path", opts.Dir)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	keep := func(path string) bool {
		if enabled && isWithin(cacheRoot, path) {
			return false
		}
		return s.coord.Accepts(path)
	}

	var walkErr error
	paths := func(yield func(string) bool) {
		for path, err := range a.walker.WalkFiles(root, keep) {
			if err != nil {
				walkErr = err
				return
			}
			if !yield(path) {
				return
			}
		}
	}

	err = a.warmPaths(ctx, s.coord, root, paths, jobs)
	if err == nil {
		err = walkErr
	}
	stats := s.coord.Stats()
	a.logger.Info(fmt.Sprintf("warmed %d files: %d cached, %d compiled", stats.Total(), stats.Hits, stats.Misses))

	if err != nil {
		return stats, zerr.Wrap(err, domain.ErrWarmFailed.Error())
	}
	if !opts.Watch {
		return stats, ctx.Err()
	}

	err = a.watch(ctx, s.coord, root, keep, jobs)
	return s.coord.Stats(), err
}

// warmPaths resolves paths with at most jobs in flight. The first failure
// cancels the remaining work.
func (a *App) warmPaths(
	ctx context.Context,
	coord *coordinator.Coordinator,
	root string,
	paths iter.Seq[string],
	jobs int,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return a.warmFile(gctx, coord, root, path)
		})
	}

	return g.Wait()
}

// watch re-warms files accepted by keep as they change, until ctx is done.
// Failures in a batch are logged and watching continues.
func (a *App) watch(
	ctx context.Context,
	coord *coordinator.Coordinator,
	root string,
	keep func(string) bool,
	jobs int,
) error {
	w, err := a.newWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	defer func() { _ = w.Stop() }()

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.Start(wctx, root); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", root)
	}
	a.logger.Info(fmt.Sprintf("watching %s for changes", root))

	batches := make(chan []string)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case batches <- paths:
		case <-wctx.Done():
		}
	})

	go func() {
		for ev := range w.Events() {
			if ev.Operation != ports.OpWrite && ev.Operation != ports.OpCreate {
				continue
			}
			if keep(ev.Path) {
				debouncer.Add(ev.Path)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-batches:
			before := coord.Stats()
			if err := a.warmPaths(ctx, coord, root, slices.Values(paths), jobs); err != nil {
				a.logger.Error(zerr.Wrap(err, domain.ErrWarmFailed.Error()))
				continue
			}
			after := coord.Stats()
			a.logger.Info(fmt.Sprintf("rewarmed %d changed files: %d cached, %d compiled",
				len(paths), after.Hits-before.Hits, after.Misses-before.Misses))
		}
	}
}

func (a *App) warmFile(ctx context.Context, coord *coordinator.Coordinator, root, path string) error {
	name, relErr := filepath.Rel(root, path)
	if relErr != nil {
		name = path
	}

	vctx, vertex := a.telemetry.Record(ctx, name)
	res, err := coord.ResolveUnit(vctx, domain.SourceUnit{Path: path})
	if err != nil {
		err = zerr.With(err, "path", path)
	} else {
		switch res.Status {
		case domain.ResolveCached:
			vertex.Cached()
		case domain.ResolveSkipped:
			vertex.Log(domain.LogLevelInfo, "left as is: vendored, minified or carrying a source map")
		}
	}
	vertex.Complete(err)
	return err
}

// isWithin reports whether path lies inside dir.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Info reports the effective configuration and the namespace digest. The
// compiler is initialized so the digest includes its version.
func (a *App) Info(ctx context.Context, opts Options) (*Info, error) {
	s, err := a.open(opts)
	if err != nil {
		return nil, err
	}

	namespace, err := s.coord.Namespace(ctx)
	if err != nil {
		return nil, err
	}

	identity := s.coord.Identity()
	version, _ := identity.Metadata[domain.VersionKey].(string)
	cacheDir, enabled := s.coord.CacheRoot()
	if !enabled {
		cacheDir = s.cfg.Cache.Dir
	}

	return &Info{
		Root:       s.cfg.Root,
		Compiler:   s.cfg.Compiler.Name,
		Version:    version,
		Extensions: s.coord.Extensions(),
		MimeType:   s.compiler.MimeType(),
		Hash:       s.cfg.Cache.Hash,
		CacheDir:   cacheDir,
		Enabled:    enabled,
		Namespace:  namespace,
	}, nil
}

// Clean removes the configured cache directory.
func (a *App) Clean(_ context.Context, opts Options) error {
	path := opts.ConfigPath
	if path == "" {
		path = "."
	}

	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	dir := cfg.Cache.Dir
	if opts.CacheDir != "" {
		dir = opts.CacheDir
	}
	if dir == "" {
		a.logger.Warn("no cache directory configured")
		return nil
	}

	a.logger.Info(fmt.Sprintf("removing %s...", dir))
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove cache directory"), "path", dir)
	}
	a.logger.Info(fmt.Sprintf("removed %s", dir))
	return nil
}

// SetLogLevel changes the logger verbosity when the logger supports it.
// Levels above info also silence progress output.
func (a *App) SetLogLevel(level domain.LogLevel) {
	if l, ok := a.logger.(interface{ SetLevel(domain.LogLevel) }); ok {
		l.SetLevel(level)
	}
	if level > domain.LogLevelInfo {
		a.telemetry = telemetry.NewNoOp()
	}
}
