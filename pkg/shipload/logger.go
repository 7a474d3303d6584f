package shipload

// Logger provides a pluggable logging interface for load runs.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs progress messages for each phase.
	Info(format string, args ...interface{})

	// Warn logs recoverable row-level problems (skipped rows).
	Warn(format string, args ...interface{})

	// Error logs failures, both loader-local and fatal.
	Error(format string, args ...interface{})
}
