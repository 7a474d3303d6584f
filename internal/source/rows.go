package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/shipload/pkg/shipload"
)

// RowError explains why a row was skipped. It unwraps to the sentinel of its
// reason, so errors.Is(err, shipload.ErrInvalidQuantity) works.
type RowError struct {
	Reason shipload.SkipReason
	Source string
	Line   int
	Raw    []string

	// Value is the offending field: the quantity text or the unresolved identifier.
	Value string

	// Expected and Got are the field counts of a malformed row.
	Expected int
	Got      int

	// Cause is the CSV syntax error behind a malformed row, if any.
	Cause error
}

func (e *RowError) Error() string {
	raw := FormatFields(e.Raw)
	switch e.Reason {
	case shipload.ReasonMalformedRow:
		if e.Cause != nil {
			return fmt.Sprintf("Malformed row in %s at line %d (%v). Skipping row: %s", e.Source, e.Line, e.Cause, raw)
		}
		return fmt.Sprintf("Malformed row in %s at line %d (expected %d fields, got %d). Skipping row: %s",
			e.Source, e.Line, e.Expected, e.Got, raw)
	case shipload.ReasonInvalidQuantity:
		return fmt.Sprintf("Could not parse quantity '%s' in %s at line %d. Skipping row: %s", e.Value, e.Source, e.Line, raw)
	case shipload.ReasonUnresolvedJoinKey:
		return fmt.Sprintf("No location found for shipping_identifier '%s' in %s at line %d. Skipping row: %s",
			e.Value, e.Source, e.Line, raw)
	default:
		return fmt.Sprintf("Skipping row in %s at line %d: %s", e.Source, e.Line, raw)
	}
}

func (e *RowError) Unwrap() error {
	return e.Reason.Err()
}

// FormatFields renders raw fields for diagnostics, quoting each one so that
// empty and padded values stay visible.
func FormatFields(fields []string) string {
	return fmt.Sprintf("%q", fields)
}

// ShipmentRow is a validated Source A row.
type ShipmentRow struct {
	Origin      string
	Destination string
	Product     string
	Quantity    int64
}

// Record converts the row to a ShipmentRecord.
func (r ShipmentRow) Record() shipload.ShipmentRecord {
	return shipload.ShipmentRecord{
		Origin:      r.Origin,
		Destination: r.Destination,
		Product:     r.Product,
		Quantity:    r.Quantity,
	}
}

// LocationRow is a validated Source C row.
type LocationRow struct {
	Identifier  string
	Origin      string
	Destination string
}

// ProductRow is a Source B row of the right width. Its quantity is only
// parsed once the identifier resolves, see ParseQuantity.
type ProductRow struct {
	Identifier   string
	Product      string
	QuantityText string
}

// ParseShipmentRow validates width and quantity of a Source A row.
func ParseShipmentRow(raw RawRow) (ShipmentRow, error) {
	if err := checkArity(raw, shipload.ShipmentFieldCount); err != nil {
		return ShipmentRow{}, err
	}
	qty, err := ParseQuantity(raw, raw.Fields[3])
	if err != nil {
		return ShipmentRow{}, err
	}
	return ShipmentRow{
		Origin:      raw.Fields[0],
		Destination: raw.Fields[1],
		Product:     raw.Fields[2],
		Quantity:    qty,
	}, nil
}

// ParseLocationRow validates the width of a Source C row.
func ParseLocationRow(raw RawRow) (LocationRow, error) {
	if err := checkArity(raw, shipload.LocationFieldCount); err != nil {
		return LocationRow{}, err
	}
	return LocationRow{
		Identifier:  raw.Fields[0],
		Origin:      raw.Fields[1],
		Destination: raw.Fields[2],
	}, nil
}

// ParseProductRow validates the width of a Source B row.
func ParseProductRow(raw RawRow) (ProductRow, error) {
	if err := checkArity(raw, shipload.ProductFieldCount); err != nil {
		return ProductRow{}, err
	}
	return ProductRow{
		Identifier:   raw.Fields[0],
		Product:      raw.Fields[1],
		QuantityText: raw.Fields[2],
	}, nil
}

// ParseQuantity parses a base-10, non-negative quantity. Surrounding
// whitespace is ignored.
func ParseQuantity(raw RawRow, text string) (int64, error) {
	qty, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || qty < 0 {
		return 0, &RowError{
			Reason: shipload.ReasonInvalidQuantity,
			Source: raw.Source,
			Line:   raw.Line,
			Raw:    raw.Fields,
			Value:  text,
		}
	}
	return qty, nil
}

// Unresolved builds the error for a product row whose identifier has no location.
func Unresolved(raw RawRow, identifier string) *RowError {
	return &RowError{
		Reason: shipload.ReasonUnresolvedJoinKey,
		Source: raw.Source,
		Line:   raw.Line,
		Raw:    raw.Fields,
		Value:  identifier,
	}
}

func checkArity(raw RawRow, want int) error {
	if raw.ParseErr != nil {
		return &RowError{
			Reason:   shipload.ReasonMalformedRow,
			Source:   raw.Source,
			Line:     raw.Line,
			Raw:      raw.Fields,
			Expected: want,
			Got:      len(raw.Fields),
			Cause:    raw.ParseErr,
		}
	}
	if len(raw.Fields) != want {
		return &RowError{
			Reason:   shipload.ReasonMalformedRow,
			Source:   raw.Source,
			Line:     raw.Line,
			Raw:      raw.Fields,
			Expected: want,
			Got:      len(raw.Fields),
		}
	}
	return nil
}
