package retry

import "github.com/vvka-141/shipload/pkg/shipload"

// NeverRetry classifies every error as fatal. Local destinations use it.
type NeverRetry struct{}

// IsTransient always returns false.
func (NeverRetry) IsTransient(error) bool { return false }

// ClassifierFor returns the classifier for a destination driver.
func ClassifierFor(driver shipload.Driver) shipload.ErrorClassifier {
	switch driver {
	case shipload.DriverPostgres:
		return NewPostgreSQLErrorClassifier()
	case shipload.DriverMySQL:
		return NewMySQLErrorClassifier()
	default:
		return NeverRetry{}
	}
}
