package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/shipload/internal/logging"
	"github.com/vvka-141/shipload/pkg/shipload"
)

func TestOpenSQL_SQLiteCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ship.db")

	db, err := OpenSQL(context.Background(), shipload.Destination{Driver: shipload.DriverSQLite, Path: path}, logging.NewNullLogger())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(context.Background(), "CREATE TABLE t (x INTEGER)")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file should exist")
}

func TestOpenSQL_RejectsPostgres(t *testing.T) {
	_, err := OpenSQL(context.Background(), shipload.Destination{Driver: shipload.DriverPostgres}, logging.NewNullLogger())
	assert.ErrorIs(t, err, shipload.ErrUnsupportedDestination)
}

func TestConnectPostgres_InvalidDSN(t *testing.T) {
	dest := shipload.Destination{Driver: shipload.DriverPostgres, DSN: "postgres://localhost:notaport/x"}
	_, err := ConnectPostgres(context.Background(), dest, logging.NewNullLogger())
	assert.ErrorIs(t, err, shipload.ErrInvalidConfig)
}

func TestWrapConnectionError(t *testing.T) {
	dest := shipload.Destination{Driver: shipload.DriverPostgres, Host: "db", Port: 5432, Database: "ships"}

	tests := []struct {
		name         string
		msg          string
		wantContains string
	}{
		{"refused", "dial tcp 127.0.0.1:5432: connect: connection refused", "connection refused to db:5432"},
		{"windows refused", "No connection could be made because the target machine actively refused it", "connection refused to db:5432"},
		{"dns", "dial tcp: lookup db: no such host", `cannot resolve host "db"`},
		{"pg auth", `password authentication failed for user "x"`, `authentication failed for database "ships"`},
		{"mysql auth", "Error 1045: Access denied for user 'x'", `authentication failed for database "ships"`},
		{"pg missing db", `database "ships" does not exist`, `database "ships" does not exist`},
		{"mysql missing db", "Error 1049: Unknown database 'ships'", `database "ships" does not exist`},
		{"timeout", "dial tcp 10.0.0.1:5432: i/o timeout", "connection timed out to db:5432"},
		{"too many", "sorry, too many connections", `too many connections to database "ships"`},
		{"other", "something odd", "failed to connect to postgres://db:5432/ships"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := errors.New(tt.msg)
			err := wrapConnectionError(orig, dest)

			assert.Contains(t, err.Error(), tt.wantContains)
			assert.ErrorIs(t, err, orig)
			assert.ErrorIs(t, err, shipload.ErrConnectionFailed)
			assert.Equal(t, shipload.ExitConnectionError, shipload.ExitCodeForError(err))
		})
	}
}

func TestNewRetryExecutor_LogsRetries(t *testing.T) {
	exec := NewRetryExecutor(shipload.DriverSQLite, logging.NewNullLogger())
	calls := 0
	err := exec.Execute(context.Background(), func(context.Context) error {
		calls++
		return errors.New("connection refused")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls, "local destinations never retry")
}
