package filesystem

import (
	"context"
	"io"
)

// FileSystemProvider opens source locations for reading.
type FileSystemProvider interface {
	// Open returns a reader positioned at the start of the location.
	// Missing locations return an error wrapping fs.ErrNotExist.
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}
