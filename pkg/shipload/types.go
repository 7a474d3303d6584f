package shipload

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ShipmentRecord is one row of the shipments table.
// ID is assigned by the store and is zero before insertion.
type ShipmentRecord struct {
	ID          int64
	Origin      string
	Destination string
	Product     string
	Quantity    int64
}

// Sources names the three tabular inputs of a run.
type Sources struct {
	// Shipments is Source A: origin, destination, product, quantity.
	Shipments string

	// Products is Source B: shipping_identifier, product, quantity.
	Products string

	// Locations is Source C: shipping_identifier, origin, destination.
	Locations string
}

// LoadConfig contains everything a single load run needs.
type LoadConfig struct {
	Sources Sources

	// Destination is a SQLite path, a postgres:// URI, an ADO.NET string
	// or a mysql:// DSN.
	Destination string

	// Timeout bounds the whole run. Zero means no limit.
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.Sources.Shipments == "" {
		errs = append(errs, fmt.Errorf("shipments source is required: %w", ErrInvalidConfig))
	}
	if c.Sources.Products == "" {
		errs = append(errs, fmt.Errorf("products source is required: %w", ErrInvalidConfig))
	}
	if c.Sources.Locations == "" {
		errs = append(errs, fmt.Errorf("locations source is required: %w", ErrInvalidConfig))
	}
	if c.Destination == "" {
		errs = append(errs, fmt.Errorf("destination is required: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Driver identifies the kind of destination store.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

// Destination is a parsed destination string.
type Destination struct {
	Driver Driver

	// Path is the database file for DriverSQLite.
	Path string

	// DSN is the driver-native connection string for network drivers.
	DSN string

	// Host, Port and Database are informational (logging, error guidance).
	Host     string
	Port     int
	Database string
}

// String returns a credential-free description of the destination.
func (d Destination) String() string {
	switch d.Driver {
	case DriverSQLite:
		return fmt.Sprintf("sqlite:%s", d.Path)
	default:
		return fmt.Sprintf("%s://%s:%d/%s", d.Driver, d.Host, d.Port, d.Database)
	}
}

// SourceStats counts what happened to the rows of one source.
type SourceStats struct {
	Source string

	// Rows is the number of data rows read (header excluded).
	Rows int

	// Inserted is the number of ShipmentRecords written from this source.
	Inserted int

	// Indexed is the number of distinct identifiers held by the location index.
	Indexed int

	// Skipped counts discarded rows per reason.
	Skipped map[SkipReason]int

	// Missing is set when the source could not be opened.
	Missing bool
}

// NewSourceStats returns zeroed stats for the named source.
func NewSourceStats(source string) *SourceStats {
	return &SourceStats{Source: source, Skipped: make(map[SkipReason]int)}
}

// Skip records one discarded row.
func (s *SourceStats) Skip(reason SkipReason) {
	s.Skipped[reason]++
}

// SkippedTotal returns the number of discarded rows over all reasons.
func (s *SourceStats) SkippedTotal() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}

// RunSummary reports the outcome of one committed run.
type RunSummary struct {
	RunID       uuid.UUID
	Destination Destination
	Sources     []*SourceStats

	// Cleared is the number of rows removed before loading.
	Cleared int64

	// Total is the row count of the shipments table after loading.
	Total int64

	StartedAt time.Time
	Duration  time.Duration
}

// Inserted returns the number of records inserted over all sources.
func (s *RunSummary) Inserted() int {
	total := 0
	for _, src := range s.Sources {
		total += src.Inserted
	}
	return total
}

// Skipped returns the number of discarded rows over all sources.
func (s *RunSummary) Skipped() int {
	total := 0
	for _, src := range s.Sources {
		total += src.SkippedTotal()
	}
	return total
}
