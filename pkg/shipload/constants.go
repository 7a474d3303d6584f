package shipload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load committed
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (invalid arguments or flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or destination
	ExitConnectionError = 11 // Failed to connect to the destination store
	ExitStoreFailed     = 13 // Destination store rejected a statement; rolled back
)

const (
	// TableName is the destination table. It is never taken from input.
	TableName = "shipments"

	// DefaultShipmentsSource is Source A: origin, destination, product, quantity.
	DefaultShipmentsSource = "data/shipping_data_0.csv"

	// DefaultProductsSource is Source B: shipping_identifier, product, quantity.
	DefaultProductsSource = "data/shipping_data_1.csv"

	// DefaultLocationsSource is Source C: shipping_identifier, origin, destination.
	DefaultLocationsSource = "data/shipping_data_2.csv"

	// DefaultDestination is the SQLite file created next to the working directory.
	DefaultDestination = "shipment_database.db"

	// ShipmentFieldCount is the arity of Source A rows.
	ShipmentFieldCount = 4

	// ProductFieldCount is the arity of Source B rows.
	ProductFieldCount = 3

	// LocationFieldCount is the arity of Source C rows.
	LocationFieldCount = 3

	// DefaultRetryInitialDelay is the initial delay before the first connect retry.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the maximum delay between connect retries.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the maximum number of connect retries.
	DefaultRetryMaxAttempts = 3

	// AppName is reported to network databases as the client application.
	AppName = "shipload"
)
