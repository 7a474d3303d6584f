package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/shipload/pkg/shipload"
)

// fakeStore records the lifecycle calls a run makes.
type fakeStore struct {
	tx         *fakeTx
	failSchema bool
	calls      []string
	closed     bool
}

func (s *fakeStore) EnsureSchema(context.Context) error {
	s.calls = append(s.calls, "schema")
	if s.failSchema {
		return fmt.Errorf("failed to create table shipments: %w: permission denied", shipload.ErrStore)
	}
	return nil
}

func (s *fakeStore) Begin(context.Context) (shipload.Tx, error) {
	s.calls = append(s.calls, "begin")
	return s.tx, nil
}

func (s *fakeStore) Destination() shipload.Destination         { return shipload.Destination{} }
func (s *fakeStore) Close() error {
	s.closed = true
	return nil
}

func (s *fakeStore) opener() StoreOpener {
	return func(context.Context, shipload.Destination, shipload.Logger) (shipload.Store, error) {
		return s, nil
	}
}

type fakeTx struct {
	records    []shipload.ShipmentRecord
	failInsert int
	failCommit bool
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Clear(context.Context) (int64, error) { return 0, nil }
func (t *fakeTx) Count(context.Context) (int64, error) { return int64(len(t.records)), nil }
func (t *fakeTx) Rollback(context.Context) error       { t.rolledBack = !t.committed; return nil }

func (t *fakeTx) Insert(_ context.Context, rec shipload.ShipmentRecord) error {
	if t.failInsert > 0 && len(t.records)+1 == t.failInsert {
		return fmt.Errorf("failed to insert shipment: %w: constraint failed", shipload.ErrStore)
	}
	t.records = append(t.records, rec)
	return nil
}

func (t *fakeTx) Commit(context.Context) error {
	if t.failCommit {
		return fmt.Errorf("failed to commit: %w: disk I/O error", shipload.ErrStore)
	}
	t.committed = true
	return nil
}
