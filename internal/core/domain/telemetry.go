package domain

// ResolveStatus records how a single resolve request was satisfied.
type ResolveStatus string

const (
	// ResolveSkipped indicates the heuristics bypassed compilation and the source was returned unchanged.
	ResolveSkipped ResolveStatus = "skipped"
	// ResolveCached indicates the compiled text was read from the cache.
	ResolveCached ResolveStatus = "cached"
	// ResolveCompiled indicates the compiler was invoked.
	ResolveCompiled ResolveStatus = "compiled"
)

// IsCacheDecision reports whether the status counted towards hit/miss stats.
func (s ResolveStatus) IsCacheDecision() bool {
	return s == ResolveCached || s == ResolveCompiled
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
