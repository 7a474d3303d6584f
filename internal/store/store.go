package store

import (
	"context"
	"fmt"

	"github.com/vvka-141/shipload/internal/db"
	"github.com/vvka-141/shipload/pkg/shipload"
)

// Open connects to dest and returns the matching store.
func Open(ctx context.Context, dest shipload.Destination, logger shipload.Logger) (shipload.Store, error) {
	switch dest.Driver {
	case shipload.DriverSQLite, shipload.DriverMySQL:
		conn, err := db.OpenSQL(ctx, dest, logger)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(conn, dest), nil

	case shipload.DriverPostgres:
		pool, err := db.ConnectPostgres(ctx, dest, logger)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pool, dest), nil

	default:
		return nil, fmt.Errorf("driver %q: %w", dest.Driver, shipload.ErrUnsupportedDestination)
	}
}

// storeError marks err as a store failure while keeping the driver error reachable.
func storeError(action string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", action, shipload.ErrStore, err)
}
