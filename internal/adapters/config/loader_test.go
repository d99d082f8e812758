package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stash/internal/adapters/config"
	"go.trai.ch/stash/internal/core/domain"
	"go.trai.ch/stash/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log), log
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Success(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
cache:
  dir: build/cache
  hash: sha256
  packaged: ["**/*.asar/**", "", "**/*.asar/**"]
  level: 9
compiler:
  name: babel
  command: ["babel", "--filename", "$STASH_SOURCE_PATH"]
  version_command: ["babel", "--version"]
  extensions: [".js", ".jsx", ".js"]
  mime_type: application/javascript
  metadata:
    preset: env
    loose: true
    targets: {node: 20}
  env:
    BABEL_ENV: production
skip:
  ignore: ["**/vendor/**"]
host:
  command: ["node", "-"]
  env:
    NODE_ENV: production
`)

	loader, _ := newLoader(t)
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, filepath.Join(dir, "build", "cache"), cfg.Cache.Dir)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, domain.HashSHA256, cfg.Cache.Hash)
	assert.Equal(t, []string{"**/*.asar/**"}, cfg.Cache.Packaged)
	assert.Equal(t, 9, cfg.Cache.Level)
	assert.Equal(t, cfg.Cache.Dir, cfg.CacheRoot())

	assert.Equal(t, "babel", cfg.Compiler.Name)
	assert.Equal(t, []string{"babel", "--filename", "$STASH_SOURCE_PATH"}, cfg.Compiler.Command)
	assert.Equal(t, []string{"babel", "--version"}, cfg.Compiler.VersionCommand)
	assert.Equal(t, []string{".js", ".jsx"}, cfg.Compiler.Extensions)
	assert.Equal(t, "application/javascript", cfg.Compiler.MimeType)
	assert.Equal(t, "env", cfg.Compiler.Metadata["preset"])
	assert.Equal(t, true, cfg.Compiler.Metadata["loose"])
	assert.Equal(t, map[string]any{"node": 20}, cfg.Compiler.Metadata["targets"])
	assert.Equal(t, map[string]string{"BABEL_ENV": "production"}, cfg.Compiler.Env)

	assert.Equal(t, []string{"**/vendor/**"}, cfg.Skip.Ignore)
	assert.Equal(t, []string{"node", "-"}, cfg.Host.Command)
	assert.Equal(t, map[string]string{"NODE_ENV": "production"}, cfg.Host.Env)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
compiler:
  command: ["cat"]
  extensions: [".txt"]
`)

	loader, _ := newLoader(t)
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, domain.DefaultCacheDir), cfg.Cache.Dir)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, domain.HashSHA1, cfg.Cache.Hash)
	assert.Nil(t, cfg.Cache.Packaged)
	assert.Equal(t, domain.DefaultCompressionLevel, cfg.Cache.Level)
	assert.Nil(t, cfg.Skip.Ignore)
}

func TestLoad_EmptyListsStayEmpty(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
cache:
  packaged: []
compiler:
  command: ["cat"]
skip:
  ignore: []
`)

	loader, _ := newLoader(t)
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Skip.Ignore)
	assert.Empty(t, cfg.Skip.Ignore)
	require.NotNil(t, cfg.Cache.Packaged)
	assert.Empty(t, cfg.Cache.Packaged)
}

func TestLoad_DisabledCache(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "enabled false", content: "cache:\n  enabled: false\ncompiler:\n  command: [cat]\n"},
		{name: "empty dir", content: "cache:\n  dir: \"\"\ncompiler:\n  command: [cat]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)

			loader, _ := newLoader(t)
			cfg, err := loader.Load(path)
			require.NoError(t, err)

			assert.False(t, cfg.Cache.Enabled)
			assert.Empty(t, cfg.CacheRoot())
		})
	}
}

func TestLoad_AbsoluteCacheDirAndRoot(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(t.TempDir(), "elsewhere")
	path := writeConfig(t, dir, "root: src\ncache:\n  dir: "+cacheDir+"\ncompiler:\n  command: [cat]\n")

	loader, _ := newLoader(t)
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "src"), cfg.Root)
	assert.Equal(t, cacheDir, cfg.Cache.Dir)
}

func TestLoad_DiscoversUpwards(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "compiler:\n  command: [cat]\n  extensions: [.txt]\n")
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	loader, _ := newLoader(t)
	cfg, err := loader.Load(nested)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, []string{".txt"}, cfg.Compiler.Extensions)
}

func TestLoad_NoConfigurationUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	loader, log := newLoader(t)
	log.EXPECT().Info(gomock.Any())

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, filepath.Join(dir, domain.DefaultCacheDir), cfg.Cache.Dir)
	assert.Empty(t, cfg.Compiler.Command)
}

func TestLoad_WarnsWithoutCompilerCommand(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "compiler:\n  extensions: [.js]\n")

	loader, log := newLoader(t)
	log.EXPECT().Warn(gomock.Any())

	_, err := loader.Load(path)
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "invalid yaml", content: "compiler: [", want: domain.ErrConfigParseFailed},
		{name: "unknown hash", content: "cache:\n  hash: md5\ncompiler:\n  command: [cat]\n", want: domain.ErrInvalidHashAlgorithm},
		{name: "level too high", content: "cache:\n  level: 10\ncompiler:\n  command: [cat]\n", want: domain.ErrInvalidCompressionLevel},
		{name: "level too low", content: "cache:\n  level: -2\ncompiler:\n  command: [cat]\n", want: domain.ErrInvalidCompressionLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)

			loader, _ := newLoader(t)
			_, err := loader.Load(path)
			require.ErrorContains(t, err, tt.want.Error())
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}
