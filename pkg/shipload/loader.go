package shipload

import "context"

// Loader is the main interface for executing a load run.
// Implementations own the destination lifecycle: schema, clear, load, commit.
type Loader interface {
	// Load executes one run using the provided configuration.
	// It returns a summary only when the run committed.
	Load(ctx context.Context, config LoadConfig) (*RunSummary, error)
}
