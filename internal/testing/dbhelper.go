package testing

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/shipload/internal/testinfra"
	"github.com/vvka-141/shipload/pkg/shipload"
)

// TestConnEnv overrides the auto-started container with an existing server.
const TestConnEnv = "SHIPLOAD_TEST_PG_CONN"

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		container, err := testinfra.StartSimplePostgres(context.Background())
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: SHIPLOAD_TEST_PG_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(TestConnEnv); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestConnEnv, err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequirePostgres skips in short mode or without a server, and otherwise
// returns a connection string to a database with no shipments table.
func RequirePostgres(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	connString := GetTestConnectionString(t)
	DropShipments(t, connString)
	return connString
}

// DropShipments removes the shipments table so each test starts clean.
func DropShipments(t *testing.T, connString string) {
	t.Helper()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "DROP TABLE IF EXISTS "+shipload.TableName); err != nil {
		t.Fatalf("drop %s: %v", shipload.TableName, err)
	}
}
