package store

import "github.com/vvka-141/shipload/pkg/shipload"

const (
	querySQLiteCreateTable = `
CREATE TABLE IF NOT EXISTS ` + shipload.TableName + ` (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	product TEXT NOT NULL,
	quantity INTEGER NOT NULL
)`

	queryMySQLCreateTable = `
CREATE TABLE IF NOT EXISTS ` + shipload.TableName + ` (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	product TEXT NOT NULL,
	quantity BIGINT NOT NULL CHECK (quantity >= 0)
)`

	queryPostgresCreateTable = `
CREATE TABLE IF NOT EXISTS ` + shipload.TableName + ` (
	id BIGSERIAL PRIMARY KEY,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	product TEXT NOT NULL,
	quantity BIGINT NOT NULL CHECK (quantity >= 0)
)`

	queryClear = `DELETE FROM ` + shipload.TableName
	queryCount = `SELECT COUNT(*) FROM ` + shipload.TableName

	queryInsert         = `INSERT INTO ` + shipload.TableName + ` (origin, destination, product, quantity) VALUES (?, ?, ?, ?)`
	queryPostgresInsert = `INSERT INTO ` + shipload.TableName + ` (origin, destination, product, quantity) VALUES ($1, $2, $3, $4)`
)
