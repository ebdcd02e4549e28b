// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store, using database/sql over the pgx
// stdlib driver. All implementations accept a store.DBTX so they run
// unchanged inside or outside a transaction.
package postgres
