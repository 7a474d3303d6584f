package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
)

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Open opens a local file. Directories are rejected.
func (p *OSFileSystem) Open(_ context.Context, location string) (io.ReadCloser, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", location, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("path is a directory, not a file: %s", location)
	}

	return f, nil
}
