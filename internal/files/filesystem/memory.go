package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sync"
)

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Locations are normalized to forward slashes.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	opens map[string]int
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		opens: make(map[string]int),
	}
}

// AddFile adds or replaces a file.
func (mfs *MemoryFileSystem) AddFile(location string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[normalize(location)] = []byte(content)
}

// Remove deletes a file if present.
func (mfs *MemoryFileSystem) Remove(location string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	delete(mfs.files, normalize(location))
}

// Open returns a reader over a snapshot of the file content.
func (mfs *MemoryFileSystem) Open(_ context.Context, location string) (io.ReadCloser, error) {
	key := normalize(location)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	content, ok := mfs.files[key]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: location, Err: fs.ErrNotExist}
	}
	mfs.opens[key]++

	return io.NopCloser(bytes.NewReader(bytes.Clone(content))), nil
}

// OpenCount reports how many times a location was opened successfully.
func (mfs *MemoryFileSystem) OpenCount(location string) int {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.opens[normalize(location)]
}

func (mfs *MemoryFileSystem) String() string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return fmt.Sprintf("MemoryFileSystem(%d files)", len(mfs.files))
}

func normalize(location string) string {
	return path.Clean(filepath.ToSlash(location))
}
