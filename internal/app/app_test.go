package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stash/internal/adapters/fs"
	"go.trai.ch/stash/internal/adapters/host"
	"go.trai.ch/stash/internal/adapters/telemetry/progrock"
	"go.trai.ch/stash/internal/app"
	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
	"go.trai.ch/stash/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app    *app.App
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
	cfg    *domain.Config
	stdout *bytes.Buffer
}

// newFixture builds an App whose compiler upper-cases ".txt" files.
func newFixture(t *testing.T, tel ports.Telemetry, newWatcher ports.WatcherFactory) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	root := t.TempDir()
	cfg := &domain.Config{
		Root: root,
		Cache: domain.CacheConfig{
			Dir:     filepath.Join(root, domain.DefaultCacheDir),
			Enabled: true,
			Hash:    domain.HashSHA1,
			Level:   domain.DefaultCompressionLevel,
		},
		Compiler: domain.CompilerConfig{
			Name:       "upper",
			Command:    []string{"tr", "a-z", "A-Z"},
			Version:    "1.0.0",
			Extensions: []string{".txt"},
		},
	}

	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	stdout := new(bytes.Buffer)
	a := app.New(loader, logger, tel, fs.NewWalker(fs.DefaultWalkIgnores...), host.NewRegistry(), newWatcher).
		WithOutput(stdout, new(bytes.Buffer))

	return fixture{app: a, loader: loader, logger: logger, cfg: cfg, stdout: stdout}
}

func (f fixture) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(f.cfg.Root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	count := 0
	_ = filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err == nil && d.Type().IsRegular() && !strings.HasPrefix(d.Name(), ".entry-") {
			count++
		}
		return nil
	})
	return count
}

func TestApp_Resolve(t *testing.T) {
	f := newFixture(t, nil, nil)
	src := f.write(t, "hello.txt", "hello\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)

	text, err := f.app.Resolve(context.Background(), src, app.Options{})
	require.NoError(t, err)

	assert.Equal(t, "HELLO\n", string(text))
	assert.Equal(t, 1, countEntries(t, f.cfg.Cache.Dir))
}

func TestApp_Resolve_IgnoreList(t *testing.T) {
	tests := []struct {
		name   string
		ignore []string
		want   string
	}{
		{name: "default skips vendored", ignore: nil, want: "vendored\n"},
		{name: "empty list compiles vendored", ignore: []string{}, want: "VENDORED\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil, nil)
			src := f.write(t, filepath.Join("node_modules", "lib", "a.txt"), "vendored\n")
			f.cfg.Skip.Ignore = tt.ignore
			f.loader.EXPECT().Load(".").Return(f.cfg, nil)

			text, err := f.app.Resolve(context.Background(), src, app.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(text))
		})
	}
}

func TestApp_Resolve_NoCache(t *testing.T) {
	f := newFixture(t, nil, nil)
	src := f.write(t, "hello.txt", "hello\n")
	f.loader.EXPECT().Load("stash.yaml").Return(f.cfg, nil)

	text, err := f.app.Resolve(context.Background(), src, app.Options{ConfigPath: "stash.yaml", NoCache: true})
	require.NoError(t, err)

	assert.Equal(t, "HELLO\n", string(text))
	assert.NoDirExists(t, f.cfg.Cache.Dir)
}

func TestApp_Resolve_CacheDirOverride(t *testing.T) {
	f := newFixture(t, nil, nil)
	src := f.write(t, "hello.txt", "hello\n")
	f.cfg.Cache.Enabled = false
	override := filepath.Join(t.TempDir(), "override")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)

	_, err := f.app.Resolve(context.Background(), src, app.Options{CacheDir: override})
	require.NoError(t, err)

	assert.Equal(t, 1, countEntries(t, override))
	assert.NoDirExists(t, filepath.Join(f.cfg.Root, domain.DefaultCacheDir))
}

func TestApp_Resolve_SkippedFileUnchanged(t *testing.T) {
	f := newFixture(t, nil, nil)
	src := f.write(t, "notes.md", "keep me\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)

	text, err := f.app.Resolve(context.Background(), src, app.Options{})
	require.NoError(t, err)

	assert.Equal(t, "keep me\n", string(text))
	assert.NoDirExists(t, f.cfg.Cache.Dir)
}

func TestApp_Resolve_LoadFailure(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.loader.EXPECT().Load(".").Return(nil, errors.New("load failed"))

	_, err := f.app.Resolve(context.Background(), "hello.txt", app.Options{})
	require.ErrorContains(t, err, "load failed")
}

func TestApp_Resolve_NoExtensions(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.cfg.Compiler.Extensions = nil
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)

	_, err := f.app.Resolve(context.Background(), "hello.txt", app.Options{})
	require.ErrorContains(t, err, domain.ErrNoExtensions.Error())
}

func TestApp_Run(t *testing.T) {
	f := newFixture(t, nil, nil)
	src := f.write(t, "main.txt", "hello\n")
	f.cfg.Host.Command = []string{"sh", "-c", `cat; printf '%s %s\n' "$1" "$(basename "$STASH_MODULE_PATH")"`, "host"}
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)

	err := f.app.Run(context.Background(), src, []string{"world"}, app.Options{})
	require.NoError(t, err)

	assert.Equal(t, "HELLO\nworld main.txt\n", f.stdout.String())
}

func TestApp_Run_WithoutHostCommand(t *testing.T) {
	f := newFixture(t, nil, nil)
	src := f.write(t, "main.txt", "hello\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)

	require.NoError(t, f.app.Run(context.Background(), src, nil, app.Options{}))
	assert.Equal(t, "HELLO\n", f.stdout.String())
}

func TestApp_Run_NoHandler(t *testing.T) {
	f := newFixture(t, nil, nil)
	src := f.write(t, "main.md", "hello\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)

	err := f.app.Run(context.Background(), src, nil, app.Options{})
	require.ErrorContains(t, err, domain.ErrNoHandler.Error())
}

func TestApp_Run_HostFailure(t *testing.T) {
	f := newFixture(t, nil, nil)
	src := f.write(t, "main.txt", "hello\n")
	f.cfg.Host.Command = []string{"sh", "-c", "exit 3"}
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)

	err := f.app.Run(context.Background(), src, nil, app.Options{})
	require.ErrorContains(t, err, domain.ErrHostExecutionFailed.Error())
}

func TestApp_Warm(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	f := newFixture(t, tel, nil)
	f.write(t, "a.txt", "alpha\n")
	f.write(t, "sub/b.txt", "beta\n")
	f.write(t, "node_modules/dep/c.txt", "vendored\n")
	f.write(t, "sub/d.js", "ignored\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil).Times(2)

	var names []string
	record := func(ctx context.Context, name string) (context.Context, ports.Vertex) {
		names = append(names, name)
		return ctx, vertex
	}

	ctx := context.Background()

	tel.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(record).Times(2)
	vertex.EXPECT().Complete(nil).Times(2)
	f.logger.EXPECT().Info("warmed 2 files: 0 cached, 2 compiled")

	stats, err := f.app.Warm(ctx, app.WarmOptions{Jobs: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Hits: 0, Misses: 2}, stats)
	assert.ElementsMatch(t, []string{"a.txt", filepath.Join("sub", "b.txt")}, names)

	tel.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(record).Times(2)
	vertex.EXPECT().Cached().Times(2)
	vertex.EXPECT().Complete(nil).Times(2)
	f.logger.EXPECT().Info("warmed 2 files: 2 cached, 0 compiled")

	stats, err = f.app.Warm(ctx, app.WarmOptions{Jobs: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Hits: 2, Misses: 0}, stats)
	assert.Equal(t, 2, countEntries(t, f.cfg.Cache.Dir))
}

func TestApp_Warm_RendersProgress(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	rec := progrock.New(&out)
	f := newFixture(t, rec, nil)
	f.write(t, "a.txt", "alpha\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil).Times(2)
	f.logger.EXPECT().Info(gomock.Any()).Times(2)

	ctx := context.Background()
	_, err := f.app.Warm(ctx, app.WarmOptions{})
	require.NoError(t, err)
	_, err = f.app.Warm(ctx, app.WarmOptions{})
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	assert.Contains(t, out.String(), "a.txt DONE")
	assert.Contains(t, out.String(), "a.txt CACHED")
}

func TestApp_Warm_QuietSilencesProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)

	f := newFixture(t, tel, nil)
	f.write(t, "a.txt", "alpha\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Info(gomock.Any())

	f.app.SetLogLevel(domain.LogLevelWarn)
	stats, err := f.app.Warm(context.Background(), app.WarmOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestApp_Warm_SkippedFileIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	f := newFixture(t, tel, nil)
	f.write(t, "min.txt", strings.Repeat("x", 200))
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Info("warmed 0 files: 0 cached, 0 compiled")

	tel.EXPECT().Record(gomock.Any(), "min.txt").Return(context.Background(), vertex)
	vertex.EXPECT().Log(domain.LogLevelInfo, gomock.Any())
	vertex.EXPECT().Complete(nil)

	_, err := f.app.Warm(context.Background(), app.WarmOptions{})
	require.NoError(t, err)
}

func TestApp_Warm_Parallel(t *testing.T) {
	f := newFixture(t, nil, nil)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		f.write(t, filepath.Join(name, name+".txt"), name+"\n")
	}
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Info(gomock.Any())

	stats, err := f.app.Warm(context.Background(), app.WarmOptions{Jobs: 4})
	require.NoError(t, err)

	assert.Equal(t, int64(8), stats.Misses)
	assert.Equal(t, 8, countEntries(t, f.cfg.Cache.Dir))
}

func TestApp_Warm_Subdirectory(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.write(t, "a.txt", "alpha\n")
	f.write(t, "sub/b.txt", "beta\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Info("warmed 1 files: 0 cached, 1 compiled")

	_, err := f.app.Warm(context.Background(), app.WarmOptions{Dir: filepath.Join(f.cfg.Root, "sub")})
	require.NoError(t, err)
}

func TestApp_Warm_CacheDisabled(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.write(t, "a.txt", "alpha\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Warn(gomock.Any())
	f.logger.EXPECT().Info("warmed 1 files: 0 cached, 1 compiled")

	_, err := f.app.Warm(context.Background(), app.WarmOptions{Options: app.Options{NoCache: true}})
	require.NoError(t, err)
	assert.NoDirExists(t, f.cfg.Cache.Dir)
}

func TestApp_Warm_CompileFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	f := newFixture(t, tel, nil)
	f.cfg.Compiler.Command = []string{"false"}
	f.write(t, "a.txt", "alpha\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)

	tel.EXPECT().Record(gomock.Any(), "a.txt").Return(context.Background(), vertex)
	vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))
	f.logger.EXPECT().Info(gomock.Any())

	_, err := f.app.Warm(context.Background(), app.WarmOptions{})
	require.ErrorContains(t, err, domain.ErrWarmFailed.Error())
	require.ErrorContains(t, err, domain.ErrCompileFailed.Error())
}

func TestApp_Warm_MissingDirectory(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Info("warmed 0 files: 0 cached, 0 compiled")

	stats, err := f.app.Warm(context.Background(), app.WarmOptions{Dir: filepath.Join(f.cfg.Root, "does-not-exist")})
	require.ErrorContains(t, err, domain.ErrWarmFailed.Error())
	require.ErrorContains(t, err, domain.ErrWalkFailed.Error())
	assert.Equal(t, domain.Stats{}, stats)
}

func TestApp_Info(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.cfg.Compiler.Extensions = []string{".TXT", ".text"}
	f.loader.EXPECT().Load(".").Return(f.cfg, nil).Times(2)

	info, err := f.app.Info(context.Background(), app.Options{})
	require.NoError(t, err)

	assert.Equal(t, f.cfg.Root, info.Root)
	assert.Equal(t, "upper", info.Compiler)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, []string{".text", ".txt"}, info.Extensions)
	assert.Equal(t, "text/plain", info.MimeType)
	assert.Equal(t, domain.HashSHA1, info.Hash)
	assert.Equal(t, f.cfg.Cache.Dir, info.CacheDir)
	assert.True(t, info.Enabled)
	assert.Len(t, info.Namespace, 40)

	f.cfg.Compiler.Version = "2.0.0"
	changed, err := f.app.Info(context.Background(), app.Options{})
	require.NoError(t, err)
	assert.NotEqual(t, info.Namespace, changed.Namespace)
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.write(t, filepath.Join(domain.DefaultCacheDir, "ns", "entry"), "x")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Info(gomock.Any()).Times(2)

	require.NoError(t, f.app.Clean(context.Background(), app.Options{}))
	assert.NoDirExists(t, f.cfg.Cache.Dir)
}

func TestApp_Clean_NoDirectory(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.cfg.Cache.Dir = ""
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Warn(gomock.Any())

	require.NoError(t, f.app.Clean(context.Background(), app.Options{}))
}

func TestApp_Warm_SkipsCacheDirectory(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.write(t, "a.txt", "alpha\n")
	f.write(t, filepath.Join(domain.DefaultCacheDir, "stale.txt"), "stale\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Info("warmed 1 files: 0 cached, 1 compiled")

	_, err := f.app.Warm(context.Background(), app.WarmOptions{})
	require.NoError(t, err)
}

type fakeWatcher struct {
	events  chan ports.WatchEvent
	started chan string
}

func (w *fakeWatcher) Start(ctx context.Context, root string) error {
	w.started <- root
	go func() {
		<-ctx.Done()
		close(w.events)
	}()
	return nil
}

func (w *fakeWatcher) Stop() error { return nil }

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestApp_Warm_Watch(t *testing.T) {
	fw := &fakeWatcher{events: make(chan ports.WatchEvent, 8), started: make(chan string, 1)}
	f := newFixture(t, nil, func() (ports.Watcher, error) { return fw, nil })
	f.write(t, "a.txt", "alpha\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stats domain.Stats
	done := make(chan error, 1)
	go func() {
		var err error
		stats, err = f.app.Warm(ctx, app.WarmOptions{Watch: true})
		done <- err
	}()

	select {
	case root := <-fw.started:
		assert.Equal(t, f.cfg.Root, root)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher was not started")
	}
	require.Equal(t, 1, countEntries(t, f.cfg.Cache.Dir))

	changed := f.write(t, "b.txt", "beta\n")
	fw.events <- ports.WatchEvent{Path: changed, Operation: ports.OpCreate}
	fw.events <- ports.WatchEvent{Path: changed, Operation: ports.OpWrite}
	fw.events <- ports.WatchEvent{Path: f.write(t, "notes.md", "x"), Operation: ports.OpWrite}
	fw.events <- ports.WatchEvent{Path: filepath.Join(f.cfg.Root, "gone.txt"), Operation: ports.OpRemove}

	require.Eventually(t, func() bool {
		return countEntries(t, f.cfg.Cache.Dir) == 2
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("warm did not stop after cancellation")
	}
	assert.Equal(t, int64(2), stats.Misses)
}

func TestApp_Warm_WatchFactoryFailure(t *testing.T) {
	f := newFixture(t, nil, func() (ports.Watcher, error) { return nil, errors.New("too many open files") })
	f.write(t, "a.txt", "alpha\n")
	f.loader.EXPECT().Load(".").Return(f.cfg, nil)
	f.logger.EXPECT().Info(gomock.Any())

	_, err := f.app.Warm(context.Background(), app.WarmOptions{Watch: true})
	require.ErrorContains(t, err, domain.ErrWatchFailed.Error())
}
