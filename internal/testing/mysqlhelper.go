package testing

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"sync"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/vvka-141/shipload/internal/testinfra"
	"github.com/vvka-141/shipload/pkg/shipload"
)

// TestMySQLEnv names an existing MySQL server as a mysql:// destination.
const TestMySQLEnv = "SHIPLOAD_TEST_MYSQL_CONN"

var (
	mysqlOnce sync.Once
	mysqlDest string
	mysqlErr  error
)

func getOrStartMySQLContainer() (string, error) {
	mysqlOnce.Do(func() {
		container, err := testinfra.StartSimpleMySQL(context.Background())
		if err != nil {
			mysqlErr = err
			return
		}
		mysqlDest = container.Destination
	})
	return mysqlDest, mysqlErr
}

// RequireMySQL skips in short mode or without a server, and otherwise
// returns a mysql:// destination whose database has no shipments table.
func RequireMySQL(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)

	dest := os.Getenv(TestMySQLEnv)
	if dest == "" {
		var err error
		if dest, err = getOrStartMySQLContainer(); err != nil {
			t.Skipf("%s not set and Docker unavailable: %v", TestMySQLEnv, err)
		}
	}

	db, err := sql.Open("mysql", strings.TrimPrefix(dest, "mysql://"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(context.Background(), "DROP TABLE IF EXISTS "+shipload.TableName); err != nil {
		t.Fatalf("drop %s: %v", shipload.TableName, err)
	}
	return dest
}
