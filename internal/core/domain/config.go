package domain

// ConfigFileName is the name of the configuration file discovered from the working directory.
const ConfigFileName = "stash.yaml"

// Config is the resolved cache configuration.
type Config struct {
	// Root is the directory relative paths in the configuration resolve against.
	Root     string
	Cache    CacheConfig
	Compiler CompilerConfig
	Skip     SkipConfig
	Host     HostConfig
}

// CacheConfig controls where and whether entries are persisted.
type CacheConfig struct {
	// Dir is the absolute cache root. Empty disables the cache.
	Dir      string
	Enabled  bool
	Hash     HashAlgorithm
	Packaged []string
	// Level is the gzip compression level of new entries.
	Level int
}

// CompilerConfig describes an external-command compiler backend.
type CompilerConfig struct {
	Name           string
	Command        []string
	VersionCommand []string
	Version        string
	Extensions     []string
	MimeType       string
	Metadata       map[string]any
	Env            map[string]string
}

// SkipConfig holds path patterns that are never compiled.
type SkipConfig struct {
	Ignore []string
}

// HostConfig describes the external command resolved modules are executed by.
type HostConfig struct {
	Command []string
	Env     map[string]string
}

// CacheRoot returns the effective cache root, empty when caching is disabled.
func (c *Config) CacheRoot() string {
	if !c.Cache.Enabled {
		return ""
	}
	return c.Cache.Dir
}
