package shipload_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/shipload/pkg/shipload"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, shipload.ExitSuccess},
		{"unknown flag", errors.New("unknown flag: --foo"), shipload.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), shipload.ExitUsageError},
		{"accepts args", errors.New("accepts 0 arg(s), received 1"), shipload.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--timeout\""), shipload.ExitUsageError},
		{"invalid config", fmt.Errorf("destination is required: %w", shipload.ErrInvalidConfig), shipload.ExitConfigError},
		{"unsupported destination", fmt.Errorf("oracle://x: %w", shipload.ErrUnsupportedDestination), shipload.ExitConfigError},
		{"connection failed", shipload.ErrConnectionFailed, shipload.ExitConnectionError},
		{"connection refused text", errors.New("dial tcp: connection refused"), shipload.ExitConnectionError},
		{"store error", fmt.Errorf("insert: %w", shipload.ErrStore), shipload.ExitStoreFailed},
		{"general error", errors.New("something went wrong"), shipload.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shipload.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestSkipReason_StringAndErr(t *testing.T) {
	tests := []struct {
		reason  shipload.SkipReason
		name    string
		wantErr error
	}{
		{shipload.ReasonMalformedRow, "malformed row", shipload.ErrMalformedRow},
		{shipload.ReasonInvalidQuantity, "invalid quantity", shipload.ErrInvalidQuantity},
		{shipload.ReasonUnresolvedJoinKey, "unresolved identifier", shipload.ErrUnresolvedJoinKey},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if !errors.Is(tt.reason.Err(), tt.wantErr) {
			t.Errorf("Err() = %v, want %v", tt.reason.Err(), tt.wantErr)
		}
	}

	if got := shipload.SkipReason(42).String(); got != "unknown" {
		t.Errorf("String() for unknown reason = %q", got)
	}
}
