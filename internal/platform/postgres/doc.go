// Package postgres contains the PostgreSQL implementations of the store
// interfaces defined in internal/store. All implementations accept a
// store.DBTX so they can run against either a connection pool or a
// transaction, and they translate database-level failures (missing rows,
// unique violations) into the store error taxonomy.
package postgres
