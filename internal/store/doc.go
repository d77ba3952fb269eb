// Package store defines the persistence interfaces consumed by the engine's
// service layer, the shared error taxonomy for store implementations, and
// the transaction helper. Concrete PostgreSQL implementations live in
// internal/platform/postgres.
package store
