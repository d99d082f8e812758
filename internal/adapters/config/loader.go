// Package config provides the configuration loader for stash.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path. Directories are searched upwards for
// stash.yaml; an explicit file path must exist.
func (l *Loader) Load(path string) (*domain.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	configPath := abs
	if info, statErr := os.Stat(abs); statErr == nil && info.IsDir() {
		found, ok := findConfiguration(abs)
		if !ok {
			l.Logger.Info(fmt.Sprintf("no %s found above %s, using defaults", domain.ConfigFileName, abs))
			return build(abs, &Stashfile{})
		}
		configPath = found
	}

	var stashfile Stashfile
	if err := readAndUnmarshalYAML(configPath, &stashfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if len(stashfile.Compiler.Command) == 0 {
		l.Logger.Warn(fmt.Sprintf("%s declares no compiler command", configPath))
	}

	return build(resolveRoot(configPath, stashfile.Root), &stashfile)
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func build(root string, f *Stashfile) (*domain.Config, error) {
	algo, err := domain.ParseHashAlgorithm(f.Cache.Hash)
	if err != nil {
		return nil, zerr.With(err, "hash", f.Cache.Hash)
	}

	level := lo.FromPtrOr(f.Cache.Level, domain.DefaultCompressionLevel)
	if level < domain.DefaultCompressionLevel || level > domain.MaxCompressionLevel {
		return nil, zerr.With(domain.ErrInvalidCompressionLevel, "level", level)
	}

	dir := domain.DefaultCacheDir
	if f.Cache.Dir != nil {
		dir = *f.Cache.Dir
	}
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}

	return &domain.Config{
		Root: root,
		Cache: domain.CacheConfig{
			Dir:      dir,
			Enabled:  lo.FromPtrOr(f.Cache.Enabled, true) && dir != "",
			Hash:     algo,
			Packaged: cleanStrings(f.Cache.Packaged),
			Level:    level,
		},
		Compiler: domain.CompilerConfig{
			Name:           f.Compiler.Name,
			Command:        f.Compiler.Command,
			VersionCommand: f.Compiler.VersionCommand,
			Version:        f.Compiler.Version,
			Extensions:     cleanStrings(f.Compiler.Extensions),
			MimeType:       f.Compiler.MimeType,
			Metadata:       f.Compiler.Metadata,
			Env:            f.Compiler.Env,
		},
		Skip: domain.SkipConfig{
			Ignore: cleanStrings(f.Skip.Ignore),
		},
		Host: domain.HostConfig{
			Command: f.Host.Command,
			Env:     f.Host.Env,
		},
	}, nil
}

// cleanStrings drops blanks and duplicates while keeping the first occurrence order.
// An absent list stays nil; a present one, even if empty, stays non-nil.
func cleanStrings(strs []string) []string {
	if strs == nil {
		return nil
	}
	return lo.Uniq(lo.Compact(strs))
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
