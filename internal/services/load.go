package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/shipload/internal/db"
	"github.com/vvka-141/shipload/internal/files/filesystem"
	"github.com/vvka-141/shipload/internal/loader"
	"github.com/vvka-141/shipload/pkg/shipload"
)

// StoreOpener connects to a destination. store.Open is the production opener.
type StoreOpener func(ctx context.Context, dest shipload.Destination, logger shipload.Logger) (shipload.Store, error)

var _ shipload.Loader = (*LoadService)(nil)

// LoadService implements the Loader interface.
// Thread-Safety: NOT safe for concurrent Load() calls on the same instance.
type LoadService struct {
	openStore StoreOpener
	files     filesystem.FileSystemProvider
	logger    shipload.Logger
	now       func() time.Time
}

// NewLoadService creates a LoadService with all dependencies injected.
// Panics on nil dependencies; runtime failures are returned from Load.
func NewLoadService(openStore StoreOpener, files filesystem.FileSystemProvider, logger shipload.Logger) *LoadService {
	if openStore == nil {
		panic("openStore cannot be nil")
	}
	if files == nil {
		panic("files cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LoadService{
		openStore: openStore,
		files:     files,
		logger:    logger,
		now:       time.Now,
	}
}

// Load runs one clear-and-reload of the shipments table.
//
// The table is created if needed before the run transaction opens. Inside
// that one transaction it is emptied, filled from the shipments source and
// from the products/locations join, then committed. A missing source is reported and skipped; any store
// failure rolls the transaction back and nothing is changed. The connection
// is closed on every path.
func (s *LoadService) Load(ctx context.Context, cfg shipload.LoadConfig) (*shipload.RunSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dest, err := db.ParseDestination(cfg.Destination)
	if err != nil {
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	summary := &shipload.RunSummary{
		RunID:       uuid.New(),
		Destination: dest,
		StartedAt:   s.now(),
	}
	s.logger.Verbose("Run %s writing to %s", summary.RunID, dest)

	st, err := s.openStore(ctx, dest, s.logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := st.Close(); err != nil {
			s.logger.Error("Failed to close database connection: %v", err)
			return
		}
		s.logger.Info("Database connection closed.")
	}()

	if err := s.run(ctx, st, cfg.Sources, summary); err != nil {
		return nil, err
	}

	summary.Duration = s.now().Sub(summary.StartedAt)
	return summary, nil
}

func (s *LoadService) run(ctx context.Context, st shipload.Store, sources shipload.Sources, summary *shipload.RunSummary) (err error) {
	s.logger.Info("Ensuring table '%s' exists...", shipload.TableName)
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	tx, err := st.Begin(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		// The run context may already be cancelled; rollback must still reach the server.
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			s.logger.Error("Rollback failed: %v", rbErr)
			return
		}
		s.logger.Verbose("Transaction rolled back")
	}()

	s.logger.Info("Clearing existing data from '%s' table...", shipload.TableName)
	if summary.Cleared, err = tx.Clear(ctx); err != nil {
		return err
	}
	s.logger.Verbose("Removed %d existing rows", summary.Cleared)

	direct, err := loader.NewDirectLoader(s.files, s.logger).Load(ctx, sources.Shipments, tx)
	summary.Sources = append(summary.Sources, direct)
	if err := s.sourceError(err, ""); err != nil {
		return err
	}

	joined, err := loader.NewJoinLoader(s.files, s.logger).Load(ctx, sources.Products, sources.Locations, tx)
	summary.Sources = append(summary.Sources, joined...)
	if err := s.sourceError(err, " Cannot process dependent data."); err != nil {
		return err
	}

	if summary.Total, err = tx.Count(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	committed = true

	s.logger.Info("Database population complete. All data has been committed.")
	return nil
}

// sourceError logs a missing source and swallows it. Other errors are returned.
func (s *LoadService) sourceError(err error, suffix string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, shipload.ErrSourceMissing) {
		s.logger.Error("%v.%s", err, suffix)
		return nil
	}
	return err
}

// DescribeFailure renders a failed run for the user, separating store
// failures from everything else.
func DescribeFailure(err error) string {
	switch {
	case errors.Is(err, shipload.ErrInvalidConfig), errors.Is(err, shipload.ErrUnsupportedDestination):
		return fmt.Sprintf("Invalid configuration: %v", err)
	case errors.Is(err, shipload.ErrStore), errors.Is(err, shipload.ErrConnectionFailed):
		return fmt.Sprintf("Database error: %v", err)
	case errors.Is(err, context.Canceled):
		return "Load cancelled; no changes were committed."
	case errors.Is(err, context.DeadlineExceeded):
		return "Load timed out; no changes were committed."
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}
