package shell

import (
	"bytes"
	"context"
	"io"
	"maps"

	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
)

// EnvModulePath names the variable holding the path of the executing module.
const EnvModulePath = "STASH_MODULE_PATH"

var _ ports.ModuleHost = (*Host)(nil)

// Host implements ports.ModuleHost by piping resolved text into an
// interpreter command. Without a command the text is written to stdout.
type Host struct {
	cfg    domain.HostConfig
	stdout io.Writer
	stderr io.Writer
}

// NewHost creates a Host writing process output to stdout and stderr.
func NewHost(cfg domain.HostConfig, stdout, stderr io.Writer) *Host {
	return &Host{cfg: cfg, stdout: stdout, stderr: stderr}
}

// Execute runs text within mod. Module arguments follow the configured command.
// A nil mod runs in the current directory with no arguments.
func (h *Host) Execute(ctx context.Context, mod *domain.ModuleContext, text []byte) error {
	if mod == nil {
		mod = &domain.ModuleContext{}
	}
	if len(h.cfg.Command) == 0 {
		_, err := h.stdout.Write(text)
		return err
	}

	env := maps.Clone(h.cfg.Env)
	if env == nil {
		env = make(map[string]string, len(mod.Env)+1)
	}
	maps.Copy(env, mod.Env)
	env[EnvModulePath] = mod.Path

	return run(ctx, command{
		argv:   h.cfg.Command,
		args:   mod.Args,
		dir:    mod.Dir,
		env:    env,
		stdin:  bytes.NewReader(text),
		stdout: h.stdout,
		stderr: h.stderr,
	})
}
