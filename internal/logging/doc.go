// Package logging provides concrete implementations of the shipload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed lines to an io.Writer (stdout for the CLI)
//   - NullLogger: Discards all messages (useful for testing)
//
// Progress and row warnings are part of the tool's user-facing output, which is
// why the CLI points the console logger at stdout.
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
