package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/vvka-141/shipload/internal/files/filesystem"
	"github.com/vvka-141/shipload/internal/source"
	"github.com/vvka-141/shipload/pkg/shipload"
)

// Inserter persists one record. shipload.Tx satisfies it.
type Inserter interface {
	Insert(ctx context.Context, rec shipload.ShipmentRecord) error
}

// openSource opens location and wraps a missing location in ErrSourceMissing.
func openSource(ctx context.Context, files filesystem.FileSystemProvider, location string) (io.ReadCloser, error) {
	rc, err := files.Open(ctx, location)
	if err == nil {
		return rc, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", shipload.ErrSourceMissing, location)
	}
	return nil, fmt.Errorf("failed to open %s: %w", location, err)
}

// eachRow runs fn for every data row of location, stopping early when ctx is done.
func eachRow(ctx context.Context, files filesystem.FileSystemProvider, location string, fn func(source.RawRow) error) error {
	rc, err := openSource(ctx, files, location)
	if err != nil {
		return err
	}
	defer rc.Close()

	return source.NewReader(location, rc).Each(func(row source.RawRow) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(row)
	})
}

// skip reports a rejected row and counts it. Any other error is returned.
func skip(logger shipload.Logger, stats *shipload.SourceStats, err error) error {
	var rowErr *source.RowError
	if !errors.As(err, &rowErr) {
		return err
	}
	logger.Warn("%s", rowErr)
	stats.Skip(rowErr.Reason)
	return nil
}

func insert(ctx context.Context, dst Inserter, rec shipload.ShipmentRecord, row source.RawRow) error {
	if err := dst.Insert(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert row from %s at line %d: %w", row.Source, row.Line, err)
	}
	return nil
}
