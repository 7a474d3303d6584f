package shipload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	summary, err := svc.Load(ctx, cfg)
//	if errors.Is(err, shipload.ErrStore) {
//	    // destination rejected a statement, nothing was committed
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceMissing indicates a tabular source could not be opened.
	ErrSourceMissing = errors.New("source not found")

	// ErrStore indicates the destination store failed (schema, clear, insert or commit).
	ErrStore = errors.New("store error")

	// ErrConnectionFailed indicates the destination store could not be reached.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedDestination indicates the destination string names no known driver.
	ErrUnsupportedDestination = errors.New("unsupported destination")

	// ErrMalformedRow indicates a row with the wrong number of fields.
	ErrMalformedRow = errors.New("malformed row")

	// ErrInvalidQuantity indicates a quantity field that is not a non-negative integer.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrUnresolvedJoinKey indicates a product row whose identifier has no location.
	ErrUnresolvedJoinKey = errors.New("unresolved join key")
)

// SkipReason classifies why a row was discarded instead of loaded.
type SkipReason int

const (
	ReasonMalformedRow SkipReason = iota
	ReasonInvalidQuantity
	ReasonUnresolvedJoinKey
)

// String returns a human-readable name for the reason.
func (r SkipReason) String() string {
	switch r {
	case ReasonMalformedRow:
		return "malformed row"
	case ReasonInvalidQuantity:
		return "invalid quantity"
	case ReasonUnresolvedJoinKey:
		return "unresolved identifier"
	default:
		return "unknown"
	}
}

// Err returns the sentinel error matching the reason.
func (r SkipReason) Err() error {
	switch r {
	case ReasonMalformedRow:
		return ErrMalformedRow
	case ReasonInvalidQuantity:
		return ErrInvalidQuantity
	case ReasonUnresolvedJoinKey:
		return ErrUnresolvedJoinKey
	default:
		return errors.New("unknown skip reason")
	}
}

// SkipReasons lists every reason in reporting order.
var SkipReasons = []SkipReason{ReasonMalformedRow, ReasonInvalidQuantity, ReasonUnresolvedJoinKey}

// usageErrorPrefixes are the message prefixes cobra uses for flag and argument errors.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedDestination):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrStore):
		return ExitStoreFailed
	}

	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
