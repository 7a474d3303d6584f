// Package filesystem provides source location abstraction interfaces and implementations.
//
// A location is either a local path or a URL whose scheme selects a provider
// (s3://bucket/key). Providers return a streaming reader; callers own Close.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//   - S3FileSystem: Objects in an S3-compatible bucket (AWS S3, MinIO)
//   - Router: Dispatches a location to the provider registered for its scheme
//
// A location that does not exist yields an error satisfying
// errors.Is(err, fs.ErrNotExist) regardless of provider.
package filesystem
