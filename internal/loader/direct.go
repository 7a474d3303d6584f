package loader

import (
	"context"

	"github.com/vvka-141/shipload/internal/files/filesystem"
	"github.com/vvka-141/shipload/internal/source"
	"github.com/vvka-141/shipload/pkg/shipload"
)

// DirectLoader loads the shipments source, whose rows already carry every
// field of a ShipmentRecord.
type DirectLoader struct {
	files  filesystem.FileSystemProvider
	logger shipload.Logger
}

// NewDirectLoader creates a DirectLoader.
// Panics if any required dependency is nil.
func NewDirectLoader(files filesystem.FileSystemProvider, logger shipload.Logger) *DirectLoader {
	if files == nil {
		panic("files cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &DirectLoader{files: files, logger: logger}
}

// Load inserts one record per valid row of location into dst.
//
// A missing location returns an error wrapping shipload.ErrSourceMissing and
// inserts nothing. Invalid rows are logged as warnings and counted in the
// returned stats. An insert failure stops the load and is returned as is.
func (l *DirectLoader) Load(ctx context.Context, location string, dst Inserter) (*shipload.SourceStats, error) {
	stats := shipload.NewSourceStats(location)
	l.logger.Info("Processing %s...", location)

	err := eachRow(ctx, l.files, location, func(raw source.RawRow) error {
		stats.Rows++

		row, err := source.ParseShipmentRow(raw)
		if err != nil {
			return skip(l.logger, stats, err)
		}
		if err := insert(ctx, dst, row.Record(), raw); err != nil {
			return err
		}
		stats.Inserted++
		return nil
	})
	if err != nil {
		stats.Missing = isMissing(err)
		return stats, err
	}

	l.logger.Verbose("%s: %d rows read, %d inserted, %d skipped", location, stats.Rows, stats.Inserted, stats.SkippedTotal())
	l.logger.Info("Successfully processed %s.", location)
	return stats, nil
}
