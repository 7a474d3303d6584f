package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	// Registers the "mysql" database/sql driver.
	_ "github.com/go-sql-driver/mysql"
	// Registers the pure-Go "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/vvka-141/shipload/internal/retry"
	"github.com/vvka-141/shipload/pkg/shipload"
)

// Pool settings. A run uses one connection for its single transaction.
const (
	DefaultMaxConns        = 2
	DefaultMaxConnIdleTime = 5 * time.Minute
	sqliteBusyTimeoutMs    = 5000
)

// NewRetryExecutor returns the connect retry policy for driver, logging each
// retry through logger.
func NewRetryExecutor(driver shipload.Driver, logger shipload.Logger) *retry.Executor {
	strategy := retry.NewExponentialBackoff(shipload.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(shipload.DefaultRetryInitialDelay),
		retry.WithMaxDelay(shipload.DefaultRetryMaxDelay),
	)
	return retry.NewExecutor(retry.ClassifierFor(driver), strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("Connection attempt %d failed, retrying in %s: %v", attempt+1, delay.Round(time.Millisecond), err)
		})
}

// ConnectPostgres opens and pings a pgx pool for dest.
func ConnectPostgres(ctx context.Context, dest shipload.Destination, logger shipload.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dest.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %v: %w", err, shipload.ErrInvalidConfig)
	}
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime

	var pool *pgxpool.Pool
	err = NewRetryExecutor(dest.Driver, logger).Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, dest)
	}
	return pool, nil
}

// OpenSQL opens a database/sql handle for a SQLite or MySQL destination.
// For SQLite the parent directory of the database file is created first.
func OpenSQL(ctx context.Context, dest shipload.Destination, logger shipload.Logger) (*sql.DB, error) {
	switch dest.Driver {
	case shipload.DriverSQLite:
		return openSQLite(ctx, dest)
	case shipload.DriverMySQL:
		return openMySQL(ctx, dest, logger)
	default:
		return nil, fmt.Errorf("%s has no database/sql driver: %w", dest.Driver, shipload.ErrUnsupportedDestination)
	}
}

func openSQLite(ctx context.Context, dest shipload.Destination) (*sql.DB, error) {
	if dir := filepath.Dir(dest.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %v: %w", dest.Path, err, shipload.ErrConnectionFailed)
		}
	}

	db, err := sql.Open("sqlite", dest.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v: %w", dest.Path, err, shipload.ErrConnectionFailed)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", sqliteBusyTimeoutMs)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open %s: %v: %w", dest.Path, err, shipload.ErrConnectionFailed)
	}
	return db, nil
}

func openMySQL(ctx context.Context, dest shipload.Destination, logger shipload.Logger) (*sql.DB, error) {
	db, err := sql.Open("mysql", dest.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid MySQL DSN: %v: %w", err, shipload.ErrInvalidConfig)
	}
	db.SetMaxOpenConns(DefaultMaxConns)
	db.SetConnMaxIdleTime(DefaultMaxConnIdleTime)

	err = NewRetryExecutor(dest.Driver, logger).Execute(ctx, db.PingContext)
	if err != nil {
		db.Close()
		return nil, wrapConnectionError(err, dest)
	}
	return db, nil
}

// wrapConnectionError adds guidance for the usual causes of a failed
// connection. The result wraps both err and shipload.ErrConnectionFailed.
func wrapConnectionError(err error, dest shipload.Destination) error {
	msg := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", dest.Host, dest.Port)

	var hint string
	switch {
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "actively refused"):
		hint = fmt.Sprintf(`connection refused to %s

Possible causes:
  - The %s server is not running
  - Wrong host or port
  - Firewall blocking the connection`, addr, dest.Driver)

	case strings.Contains(msg, "no such host"):
		hint = fmt.Sprintf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not reachable`, dest.Host)

	case strings.Contains(msg, "password authentication failed") || strings.Contains(msg, "access denied"):
		hint = fmt.Sprintf(`authentication failed for database "%s"

Check the user name and password in the destination string.`, dest.Database)

	case strings.Contains(msg, "does not exist") || strings.Contains(msg, "unknown database"):
		hint = fmt.Sprintf(`database "%s" does not exist

Create it first; shipload creates the shipments table but not the database.`, dest.Database)

	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") || strings.Contains(msg, "deadline exceeded"):
		hint = fmt.Sprintf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets`, addr)

	case strings.Contains(msg, "too many connections"):
		hint = fmt.Sprintf(`too many connections to database "%s"`, dest.Database)

	default:
		return fmt.Errorf("failed to connect to %s: %w: %w", dest, shipload.ErrConnectionFailed, err)
	}

	return fmt.Errorf("%s\n\nOriginal error: %w: %w", hint, shipload.ErrConnectionFailed, err)
}
