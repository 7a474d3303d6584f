// Package store implements shipload.Store for the supported destinations.
//
// SQLite and MySQL go through database/sql (modernc.org/sqlite and
// go-sql-driver/mysql); PostgreSQL goes through a pgx pool. Every store
// writes through one transaction per run, uses bound parameters for row
// values, and takes table and column names only from constants.
package store
