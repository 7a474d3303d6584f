package retry

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/shipload/pkg/shipload"
)

func refused() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
}

func TestPostgreSQLErrorClassifier(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, true},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"bad password", &pgconn.PgError{Code: "28P01"}, false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"wrapped pg error", fmt.Errorf("ping: %w", &pgconn.PgError{Code: "08001"}), true},
		{"connection refused", refused(), true},
		{"refused message", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), true},
		{"plain error", errors.New("relation does not exist"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}

func TestMySQLErrorClassifier(t *testing.T) {
	c := NewMySQLErrorClassifier()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"too many connections", &mysql.MySQLError{Number: 1040}, true},
		{"deadlock", &mysql.MySQLError{Number: 1213}, true},
		{"lock wait timeout", &mysql.MySQLError{Number: 1205}, true},
		{"access denied", &mysql.MySQLError{Number: 1045}, false},
		{"unknown database", &mysql.MySQLError{Number: 1049}, false},
		{"invalid connection", mysql.ErrInvalidConn, true},
		{"bad conn", fmt.Errorf("query: %w", driver.ErrBadConn), true},
		{"connection refused", refused(), true},
		{"plain error", errors.New("table doesn't exist"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}

func TestIsTransientNetworkError_DNS(t *testing.T) {
	assert.True(t, isTransientNetworkError(&net.DNSError{Err: "timeout", Name: "db", IsTimeout: true}))
	assert.False(t, isTransientNetworkError(&net.DNSError{Err: "server misbehaving", Name: "db"}))
}

func TestClassifierFor(t *testing.T) {
	assert.IsType(t, &PostgreSQLErrorClassifier{}, ClassifierFor(shipload.DriverPostgres))
	assert.IsType(t, &MySQLErrorClassifier{}, ClassifierFor(shipload.DriverMySQL))
	assert.IsType(t, NeverRetry{}, ClassifierFor(shipload.DriverSQLite))
	assert.False(t, ClassifierFor(shipload.DriverSQLite).IsTransient(refused()))
}
