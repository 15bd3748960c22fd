// Package postgres implements the store interfaces using a PostgreSQL
// database as the storage backend.
package postgres
