// Package postgres provides PostgreSQL implementations of the store
// interfaces, plus the embedded schema migrations. All implementations
// accept a store.DBTX so the same store type can run against a connection
// pool or inside a transaction.
package postgres
