package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresImage    = "postgres:17-alpine"
	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	PostgresDB       = "shipload"

	MySQLImage    = "mysql:8.4"
	MySQLUser     = "shipload"
	MySQLPassword = "shipload"
	MySQLDB       = "shipload"
)

type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

// StartSimplePostgres starts a throwaway PostgreSQL server without TLS.
func StartSimplePostgres(ctx context.Context) (*PostgresContainer, error) {
	ctr, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}

type MySQLContainer struct {
	*mysql.MySQLContainer

	// Destination is a mysql:// destination string for shipload.
	Destination string
}

// StartSimpleMySQL starts a throwaway MySQL server in its default strict SQL mode.
func StartSimpleMySQL(ctx context.Context) (*MySQLContainer, error) {
	ctr, err := mysql.Run(ctx,
		MySQLImage,
		mysql.WithUsername(MySQLUser),
		mysql.WithPassword(MySQLPassword),
		mysql.WithDatabase(MySQLDB),
	)
	if err != nil {
		return nil, fmt.Errorf("start mysql: %w", err)
	}

	dsn, err := ctr.ConnectionString(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &MySQLContainer{MySQLContainer: ctr, Destination: "mysql://" + dsn}, nil
}
