package domain

import "go.trai.ch/zerr"

var (
	// ErrNoExtensions is returned when a compiler declares no file extensions.
	ErrNoExtensions = zerr.New("compiler declares no file extensions")

	// ErrCompilerInitFailed is returned when the one-shot compiler initialization fails.
	ErrCompilerInitFailed = zerr.New("failed to initialize compiler")

	// ErrCompileFailed is returned when the compiler fails to transform a source file.
	ErrCompileFailed = zerr.New("compile failed")

	// ErrSourceReadFailed is returned when a source file cannot be read from disk.
	ErrSourceReadFailed = zerr.New("failed to read source file")

	// ErrFailedToGetPath is returned when the absolute form of a path cannot be determined.
	ErrFailedToGetPath = zerr.New("failed to get absolute path")

	// ErrNamespaceCreateFailed is returned when the namespace directory cannot be created.
	ErrNamespaceCreateFailed = zerr.New("failed to create cache namespace directory")

	// ErrCacheWriteFailed is returned when a cache entry cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheCompressFailed is returned when a cache entry cannot be compressed.
	ErrCacheCompressFailed = zerr.New("failed to compress cache entry")

	// ErrInvalidHashAlgorithm is returned when an unknown hash algorithm is configured.
	ErrInvalidHashAlgorithm = zerr.New("invalid hash algorithm, expected 'sha1', 'sha256' or 'xxhash'")

	// ErrInvalidCompressionLevel is returned when the configured gzip level is out of range.
	ErrInvalidCompressionLevel = zerr.New("invalid compression level, expected -1 to 9")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingCompilerCommand is returned when the compiler backend has no command configured.
	ErrMissingCompilerCommand = zerr.New("compiler command is not configured")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrNoHandler is returned when no load handler is registered for a path.
	ErrNoHandler = zerr.New("no handler registered for file extension")

	// ErrHostExecutionFailed is returned when the module host fails to execute resolved text.
	ErrHostExecutionFailed = zerr.New("host execution failed")

	// ErrWarmFailed is returned when one or more files fail during a cache warm run.
	ErrWarmFailed = zerr.New("cache warm failed")

	// ErrWalkFailed is returned when the source tree cannot be walked.
	ErrWalkFailed = zerr.New("failed to walk source tree")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch for changes")
)
