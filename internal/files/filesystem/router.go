package filesystem

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Router implements FileSystemProvider by dispatching on the location scheme.
// Locations without a scheme go to the local provider.
type Router struct {
	local   FileSystemProvider
	schemes map[string]FileSystemProvider
}

// NewRouter creates a router with the given provider for plain paths.
func NewRouter(local FileSystemProvider) *Router {
	return &Router{local: local, schemes: make(map[string]FileSystemProvider)}
}

// Register serves scheme:// locations with p.
func (r *Router) Register(scheme string, p FileSystemProvider) *Router {
	r.schemes[strings.ToLower(scheme)] = p
	return r
}

// Open resolves the provider for location and opens it.
func (r *Router) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	scheme, ok := schemeOf(location)
	if !ok || scheme == "file" {
		return r.local.Open(ctx, strings.TrimPrefix(location, "file://"))
	}
	p, found := r.schemes[scheme]
	if !found {
		return nil, fmt.Errorf("unsupported source location scheme %q in %s", scheme, location)
	}
	return p.Open(ctx, location)
}

// NewDefaultRouter serves local paths from the OS and s3:// from S3.
func NewDefaultRouter() *Router {
	return NewRouter(NewOSFileSystem()).Register(S3Scheme, NewS3FileSystem(S3ConfigFromEnv()))
}

// schemeOf returns the lowercased URL scheme when location has the form scheme://...
// Single-letter schemes are treated as Windows drive letters.
func schemeOf(location string) (string, bool) {
	idx := strings.Index(location, "://")
	if idx < 2 {
		return "", false
	}
	scheme := location[:idx]
	for _, c := range scheme {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			return "", false
		}
	}
	return strings.ToLower(scheme), true
}
