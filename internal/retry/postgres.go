package retry

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQLErrorClassifier treats connection exceptions (class 08),
// insufficient resources (53), operator intervention (57), serialization
// failures, deadlocks and lock timeouts as transient.
type PostgreSQLErrorClassifier struct{}

// NewPostgreSQLErrorClassifier creates a PostgreSQLErrorClassifier.
func NewPostgreSQLErrorClassifier() *PostgreSQLErrorClassifier {
	return &PostgreSQLErrorClassifier{}
}

// IsTransient reports whether err is worth retrying.
func (c *PostgreSQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientPgCode(pgErr.Code)
	}
	return isTransientNetworkError(err)
}

func isTransientPgCode(code string) bool {
	if len(code) < 2 {
		return false
	}
	switch code[:2] {
	case "08", "53", "57":
		return true
	}
	switch code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}
