package shell

import (
	"bytes"
	"context"
	"maps"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// EnvSourcePath names the variable holding the absolute source path.
	EnvSourcePath = "STASH_SOURCE_PATH"
	// EnvCachePath names the variable holding the cache entry path, empty when caching is off.
	EnvCachePath = "STASH_CACHE_PATH"

	defaultMimeType = "text/plain"
	defaultVersion  = "0"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler by piping source through an external command.
type Compiler struct {
	cfg    domain.CompilerConfig
	logger ports.Logger
}

// NewCompiler creates a Compiler from cfg. Stderr of every invocation is
// forwarded to logger.
func NewCompiler(cfg domain.CompilerConfig, logger ports.Logger) (*Compiler, error) {
	if len(cfg.Command) == 0 {
		return nil, domain.ErrMissingCompilerCommand
	}
	return &Compiler{cfg: cfg, logger: logger}, nil
}

// Identity returns the configured extensions. The metadata carries the user
// metadata plus the compiler name and command line, so editing the command
// moves the cache to a new namespace.
func (c *Compiler) Identity() domain.CompilerIdentity {
	meta := maps.Clone(c.cfg.Metadata)
	if meta == nil {
		meta = make(map[string]any)
	}
	meta["compiler"] = c.cfg.Name
	meta["command"] = lo.ToAnySlice(c.cfg.Command)

	return domain.CompilerIdentity{
		Extensions: c.cfg.Extensions,
		Metadata:   meta,
	}
}

// Initialize runs the version command and returns its trimmed output.
// Without a version command the configured version is used.
func (c *Compiler) Initialize(ctx context.Context) (string, error) {
	if len(c.cfg.VersionCommand) == 0 {
		if c.cfg.Version != "" {
			return c.cfg.Version, nil
		}
		return defaultVersion, nil
	}

	var stdout bytes.Buffer
	stderr := &logWriter{logger: c.logger}
	err := run(ctx, command{
		argv:   c.cfg.VersionCommand,
		env:    c.cfg.Env,
		stdout: &stdout,
		stderr: stderr,
	})
	stderr.Flush()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Compile pipes source to the compiler command and returns its stdout.
func (c *Compiler) Compile(ctx context.Context, source []byte, path, entryPath string) ([]byte, error) {
	env := maps.Clone(c.cfg.Env)
	if env == nil {
		env = make(map[string]string, 2)
	}
	env[EnvSourcePath] = path
	env[EnvCachePath] = entryPath

	var stdout bytes.Buffer
	stderr := &logWriter{logger: c.logger}
	err := run(ctx, command{
		argv:   c.cfg.Command,
		dir:    filepath.Dir(path),
		env:    env,
		stdin:  bytes.NewReader(source),
		stdout: &stdout,
		stderr: stderr,
	})
	stderr.Flush()
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return stdout.Bytes(), nil
}

// MimeType returns the configured mime type of the compiled output.
func (c *Compiler) MimeType() string {
	if c.cfg.MimeType == "" {
		return defaultMimeType
	}
	return c.cfg.MimeType
}
