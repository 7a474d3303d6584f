package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/shipload/pkg/shipload"
)

// PostgresStore is a shipload.Store over a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	dest shipload.Destination
}

// NewPostgresStore wraps an open pool. The store owns pool and closes it.
func NewPostgresStore(pool *pgxpool.Pool, dest shipload.Destination) *PostgresStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	return &PostgresStore{pool: pool, dest: dest}
}

// Begin starts the run transaction.
func (s *PostgresStore) Begin(ctx context.Context) (shipload.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, storeError("begin transaction", err)
	}
	return &pgTx{tx: tx}, nil
}

// EnsureSchema creates the table on a pooled connection, outside any run transaction.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, queryPostgresCreateTable); err != nil {
		return storeError(fmt.Sprintf("create table %s", shipload.TableName), err)
	}
	return nil
}

// Destination returns the destination the store writes to.
func (s *PostgresStore) Destination() shipload.Destination {
	return s.dest
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Clear(ctx context.Context) (int64, error) {
	tag, err := t.tx.Exec(ctx, queryClear)
	if err != nil {
		return 0, storeError(fmt.Sprintf("clear table %s", shipload.TableName), err)
	}
	return tag.RowsAffected(), nil
}

func (t *pgTx) Insert(ctx context.Context, rec shipload.ShipmentRecord) error {
	if _, err := t.tx.Exec(ctx, queryPostgresInsert, rec.Origin, rec.Destination, rec.Product, rec.Quantity); err != nil {
		return storeError("insert shipment", err)
	}
	return nil
}

func (t *pgTx) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := t.tx.QueryRow(ctx, queryCount).Scan(&n); err != nil {
		return 0, storeError("count shipments", err)
	}
	return n, nil
}

func (t *pgTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return storeError("commit", err)
	}
	return nil
}

func (t *pgTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return storeError("rollback", err)
	}
	return nil
}
