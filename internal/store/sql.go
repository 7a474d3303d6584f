package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vvka-141/shipload/pkg/shipload"
)

// SQLStore is a shipload.Store over database/sql, used for SQLite and MySQL.
type SQLStore struct {
	db   *sql.DB
	dest shipload.Destination
}

// NewSQLStore wraps an open handle. The store owns db and closes it.
func NewSQLStore(db *sql.DB, dest shipload.Destination) *SQLStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &SQLStore{db: db, dest: dest}
}

// Begin starts the run transaction.
func (s *SQLStore) Begin(ctx context.Context) (shipload.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeError("begin transaction", err)
	}
	return &sqlTx{tx: tx}, nil
}

// EnsureSchema creates the table on the handle itself, never inside a run transaction.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.createTable()); err != nil {
		return storeError(fmt.Sprintf("create table %s", shipload.TableName), err)
	}
	return nil
}

func (s *SQLStore) createTable() string {
	if s.dest.Driver == shipload.DriverMySQL {
		return queryMySQLCreateTable
	}
	return querySQLiteCreateTable
}

// Destination returns the destination the store writes to.
func (s *SQLStore) Destination() shipload.Destination {
	return s.dest
}

// Close closes the underlying handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type sqlTx struct {
	tx     *sql.Tx
	insert *sql.Stmt
}

func (t *sqlTx) Clear(ctx context.Context) (int64, error) {
	res, err := t.tx.ExecContext(ctx, queryClear)
	if err != nil {
		return 0, storeError(fmt.Sprintf("clear table %s", shipload.TableName), err)
	}
	return rowsCleared(res)
}

func rowsCleared(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeError(fmt.Sprintf("count rows cleared from %s", shipload.TableName), err)
	}
	return n, nil
}

func (t *sqlTx) Insert(ctx context.Context, rec shipload.ShipmentRecord) error {
	if t.insert == nil {
		stmt, err := t.tx.PrepareContext(ctx, queryInsert)
		if err != nil {
			return storeError("prepare insert", err)
		}
		t.insert = stmt
	}
	if _, err := t.insert.ExecContext(ctx, rec.Origin, rec.Destination, rec.Product, rec.Quantity); err != nil {
		return storeError("insert shipment", err)
	}
	return nil
}

func (t *sqlTx) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := t.tx.QueryRowContext(ctx, queryCount).Scan(&n); err != nil {
		return 0, storeError("count shipments", err)
	}
	return n, nil
}

func (t *sqlTx) Commit(context.Context) error {
	t.closeStmt()
	if err := t.tx.Commit(); err != nil {
		return storeError("commit", err)
	}
	return nil
}

func (t *sqlTx) Rollback(context.Context) error {
	t.closeStmt()
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return storeError("rollback", err)
	}
	return nil
}

func (t *sqlTx) closeStmt() {
	if t.insert != nil {
		t.insert.Close()
		t.insert = nil
	}
}
