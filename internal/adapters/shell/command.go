// Package shell runs external commands as compiler backends and module hosts.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
	"go.trai.ch/zerr"
)

// command describes a single external process invocation.
type command struct {
	argv   []string
	args   []string // appended to argv verbatim, without expansion
	dir    string
	env    map[string]string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// run executes c. Arguments in argv may reference the extra environment as
// $NAME; other references are left for the command's own shell.
func run(ctx context.Context, c command) error {
	if len(c.argv) == 0 {
		return domain.ErrMissingCompilerCommand
	}

	cmdEnv := resolveEnvironment(os.Environ(), c.env)
	argv := append(expandArgs(c.argv, c.env), c.args...)

	name := argv[0]
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // Command comes from the user's config
	cmd.Args[0] = name
	cmd.Dir = c.dir
	cmd.Env = cmdEnv
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "exit_code", exitCode), "command", name)
	}
	return nil
}

// expandArgs substitutes $NAME references to the extra environment.
func expandArgs(argv []string, env map[string]string) []string {
	mapping := func(key string) string {
		if v, ok := env[key]; ok {
			return v
		}
		return "$" + key
	}
	out := make([]string, len(argv))
	for i, arg := range argv {
		out[i] = os.Expand(arg, mapping)
	}
	return out
}

// resolveEnvironment overlays extra on top of the system environment.
func resolveEnvironment(sysEnv []string, extra map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(extra))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range extra {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

// logWriter forwards complete lines to the logger as warnings, buffering partial writes.
type logWriter struct {
	logger ports.Logger
	mu     sync.Mutex
	buf    bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line: keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.logger.Warn(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.logger.Warn(w.buf.String())
		w.buf.Reset()
	}
}
