package loader

import (
	"context"
	"errors"

	"github.com/vvka-141/shipload/internal/files/filesystem"
	"github.com/vvka-141/shipload/internal/source"
	"github.com/vvka-141/shipload/pkg/shipload"
)

// Location is the origin and destination recorded for one shipping identifier.
type Location struct {
	Origin      string
	Destination string

	// Line is where the entry was read, for diagnostics.
	Line int
}

// LocationIndex maps shipping identifiers to locations.
// It is read-only once built.
type LocationIndex struct {
	entries map[string]Location
}

// Lookup returns the location for id.
func (ix *LocationIndex) Lookup(id string) (Location, bool) {
	if ix == nil {
		return Location{}, false
	}
	loc, ok := ix.entries[id]
	return loc, ok
}

// Len returns the number of distinct identifiers.
func (ix *LocationIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// JoinLoader loads the products source, resolving each row's origin and
// destination through the locations source.
type JoinLoader struct {
	files  filesystem.FileSystemProvider
	logger shipload.Logger
}

// NewJoinLoader creates a JoinLoader.
// Panics if any required dependency is nil.
func NewJoinLoader(files filesystem.FileSystemProvider, logger shipload.Logger) *JoinLoader {
	if files == nil {
		panic("files cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &JoinLoader{files: files, logger: logger}
}

// Load runs both passes: BuildIndex over locations, then LoadProducts.
// The returned stats hold one entry per source that was opened or found missing.
// If the locations source is missing, products is never read.
func (l *JoinLoader) Load(ctx context.Context, products, locations string, dst Inserter) ([]*shipload.SourceStats, error) {
	l.logger.Info("Processing %s and %s...", products, locations)

	index, locStats, err := l.BuildIndex(ctx, locations)
	if err != nil {
		return []*shipload.SourceStats{locStats}, err
	}

	prodStats, err := l.LoadProducts(ctx, products, index, dst)
	if err != nil {
		return []*shipload.SourceStats{prodStats, locStats}, err
	}

	l.logger.Info("Successfully processed %s and %s.", products, locations)
	return []*shipload.SourceStats{prodStats, locStats}, nil
}

// BuildIndex reads the locations source into a LocationIndex.
// A later row for the same identifier replaces the earlier one.
func (l *JoinLoader) BuildIndex(ctx context.Context, location string) (*LocationIndex, *shipload.SourceStats, error) {
	stats := shipload.NewSourceStats(location)
	entries := make(map[string]Location)

	err := eachRow(ctx, l.files, location, func(raw source.RawRow) error {
		stats.Rows++

		row, err := source.ParseLocationRow(raw)
		if err != nil {
			return skip(l.logger, stats, err)
		}
		if prev, ok := entries[row.Identifier]; ok {
			l.logger.Verbose("Duplicate shipping_identifier '%s' in %s at line %d replaces line %d",
				row.Identifier, location, raw.Line, prev.Line)
		}
		entries[row.Identifier] = Location{Origin: row.Origin, Destination: row.Destination, Line: raw.Line}
		return nil
	})
	if err != nil {
		stats.Missing = isMissing(err)
		return nil, stats, err
	}

	index := &LocationIndex{entries: entries}
	stats.Indexed = index.Len()
	l.logger.Verbose("%s: %d rows read, %d identifiers indexed, %d skipped", location, stats.Rows, stats.Indexed, stats.SkippedTotal())
	return index, stats, nil
}

// LoadProducts inserts one record per product row whose identifier resolves
// in index and whose quantity parses.
func (l *JoinLoader) LoadProducts(ctx context.Context, location string, index *LocationIndex, dst Inserter) (*shipload.SourceStats, error) {
	stats := shipload.NewSourceStats(location)

	err := eachRow(ctx, l.files, location, func(raw source.RawRow) error {
		stats.Rows++

		row, err := source.ParseProductRow(raw)
		if err != nil {
			return skip(l.logger, stats, err)
		}

		loc, ok := index.Lookup(row.Identifier)
		if !ok {
			return skip(l.logger, stats, source.Unresolved(raw, row.Identifier))
		}

		qty, err := source.ParseQuantity(raw, row.QuantityText)
		if err != nil {
			return skip(l.logger, stats, err)
		}

		rec := shipload.ShipmentRecord{
			Origin:      loc.Origin,
			Destination: loc.Destination,
			Product:     row.Product,
			Quantity:    qty,
		}
		if err := insert(ctx, dst, rec, raw); err != nil {
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
	return stats, nil
}

func isMissing(err error) bool {
	return errors.Is(err, shipload.ErrSourceMissing)
}
