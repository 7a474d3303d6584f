package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Scheme is the location scheme served by S3FileSystem.
const S3Scheme = "s3"

// S3Config holds explicit construction parameters. Credentials always come
// from the default AWS chain (env vars, shared config, instance role).
type S3Config struct {
	Region    string
	Endpoint  string // optional; enables a custom endpoint (e.g. MinIO)
	PathStyle bool
}

// Environment variables:
//
//	SHIPLOAD_S3_REGION=<region> (default us-east-1)
//	SHIPLOAD_S3_ENDPOINT=<url> (optional, for MinIO)
//	SHIPLOAD_S3_PATH_STYLE=true|false (default false)

// S3ConfigFromEnv reads S3Config from process environment.
func S3ConfigFromEnv() S3Config {
	return S3Config{
		Region:    os.Getenv("SHIPLOAD_S3_REGION"),
		Endpoint:  os.Getenv("SHIPLOAD_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("SHIPLOAD_S3_PATH_STYLE"), "true"),
	}
}

// objectGetter is the slice of the S3 client the provider needs.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3FileSystem implements FileSystemProvider for s3://bucket/key locations.
// The client is built on first use so local-only runs never load AWS config.
type S3FileSystem struct {
	cfg S3Config

	once      sync.Once
	client    objectGetter
	clientErr error
}

// NewS3FileSystem creates a provider that resolves its client lazily.
func NewS3FileSystem(cfg S3Config) *S3FileSystem {
	return &S3FileSystem{cfg: cfg}
}

// newS3FileSystemWithClient is used by tests to inject a fake client.
func newS3FileSystemWithClient(client objectGetter) *S3FileSystem {
	p := &S3FileSystem{client: client}
	p.once.Do(func() {})
	return p
}

// Open streams the object body.
func (p *S3FileSystem) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}

	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		var noKey *types.NoSuchKey
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return nil, &fs.PathError{Op: "open", Path: location, Err: fs.ErrNotExist}
		}
		return nil, fmt.Errorf("failed to get %s: %w", location, err)
	}
	return out.Body, nil
}

func (p *S3FileSystem) getClient(ctx context.Context) (objectGetter, error) {
	p.once.Do(func() {
		region := p.cfg.Region
		if region == "" {
			region = "us-east-1"
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
		if err != nil {
			p.clientErr = fmt.Errorf("failed to load AWS config: %w", err)
			return
		}
		p.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if p.cfg.PathStyle {
				o.UsePathStyle = true
			}
			if p.cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(p.cfg.Endpoint)
			}
		})
	})
	return p.client, p.clientErr
}

// ParseS3Location splits s3://bucket/key into its parts.
func ParseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 location %q: %w", location, err)
	}
	if u.Scheme != S3Scheme {
		return "", "", fmt.Errorf("invalid S3 location %q: scheme must be %s://", location, S3Scheme)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 location %q: expected s3://bucket/key", location)
	}
	return u.Host, key, nil
}
