package shipload

import "context"

// Store is a relational destination for shipment records.
//
// Thread-Safety: a Store is owned by a single run; implementations need not
// support concurrent transactions.
type Store interface {
	// EnsureSchema creates the shipments table if it does not exist.
	// It runs outside the run transaction: MySQL commits any open
	// transaction when it executes DDL.
	EnsureSchema(ctx context.Context) error

	// Begin opens the single transaction a run writes through.
	Begin(ctx context.Context) (Tx, error)

	// Destination describes where the store writes.
	Destination() Destination

	// Close releases the connection. It is safe to call after a failed Begin.
	Close() error
}

// Tx is the write scope of a run. Nothing is visible to other readers
// until Commit returns nil.
type Tx interface {
	// Clear removes every row of the shipments table and reports how many were removed.
	Clear(ctx context.Context) (int64, error)

	// Insert writes one record with bound parameters.
	Insert(ctx context.Context, rec ShipmentRecord) error

	// Count returns the number of rows visible in this transaction.
	Count(ctx context.Context) (int64, error)

	// Commit makes every change of the run durable.
	Commit(ctx context.Context) error

	// Rollback discards the run. Calling it after Commit is a no-op.
	Rollback(ctx context.Context) error
}
