package config

// Stashfile represents the structure of the stash.yaml configuration file.
type Stashfile struct {
	Root     string      `yaml:"root"`
	Cache    CacheDTO    `yaml:"cache"`
	Compiler CompilerDTO `yaml:"compiler"`
	Skip     SkipDTO     `yaml:"skip"`
	Host     HostDTO     `yaml:"host"`
}

// CacheDTO represents the cache section.
type CacheDTO struct {
	Dir      *string  `yaml:"dir"`
	Enabled  *bool    `yaml:"enabled"`
	Hash     string   `yaml:"hash"`
	Packaged []string `yaml:"packaged"`
	Level    *int     `yaml:"level"`
}

// CompilerDTO represents the compiler section.
type CompilerDTO struct {
	Name           string            `yaml:"name"`
	Command        []string          `yaml:"command"`
	VersionCommand []string          `yaml:"version_command"`
	Version        string            `yaml:"version"`
	Extensions     []string          `yaml:"extensions"`
	MimeType       string            `yaml:"mime_type"`
	Metadata       map[string]any    `yaml:"metadata"`
	Env            map[string]string `yaml:"env"`
}

// SkipDTO represents the skip section.
type SkipDTO struct {
	Ignore []string `yaml:"ignore"`
}

// HostDTO represents the host section.
type HostDTO struct {
	Command []string          `yaml:"command"`
	Env     map[string]string `yaml:"env"`
}
