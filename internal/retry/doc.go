// Package retry re-runs operations that fail with transient errors, waiting
// with exponential backoff between attempts.
//
// It is used to open network destinations, where the server may still be
// starting or briefly refusing connections:
//
//	exec := retry.NewExecutor(retry.ClassifierFor(shipload.DriverPostgres), retry.NewExponentialBackoff(3))
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// Classifiers decide which errors are worth another attempt. The PostgreSQL
// and MySQL classifiers look at the driver's error codes first and fall back
// to network error inspection shared by both.
package retry
