package retry

import (
	"database/sql/driver"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers treated as transient.
const (
	mysqlTooManyConnections  = 1040
	mysqlServerShutdown      = 1053
	mysqlLockWaitTimeout     = 1205
	mysqlDeadlock            = 1213
	mysqlServerGone          = 2006
	mysqlLostConnection      = 2013
	mysqlCantConnect         = 2003
	mysqlConnectionErrorSock = 2002
)

// MySQLErrorClassifier treats connection loss, server shutdown, lock
// timeouts and deadlocks as transient.
type MySQLErrorClassifier struct{}

// NewMySQLErrorClassifier creates a MySQLErrorClassifier.
func NewMySQLErrorClassifier() *MySQLErrorClassifier {
	return &MySQLErrorClassifier{}
}

// IsTransient reports whether err is worth retrying.
func (c *MySQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlTooManyConnections, mysqlServerShutdown, mysqlLockWaitTimeout, mysqlDeadlock,
			mysqlServerGone, mysqlLostConnection, mysqlCantConnect, mysqlConnectionErrorSock:
			return true
		}
		return false
	}

	if errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	return isTransientNetworkError(err)
}
