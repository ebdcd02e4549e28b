// Package store defines the persistence interfaces for the curricula
// application along with the sentinel errors shared by all implementations.
// Concrete PostgreSQL implementations live in internal/platform/postgres.
package store
