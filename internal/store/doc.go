// Package store provides persistence for flashysurf's generated output and
// tracked events.
//
// It contains:
//   - WriteFile, which replaces a file atomically (used for sitemap output)
//   - EventFileStore, an append-only JSON-lines log of events
//   - PostgresEventStore, which inserts events into a PostgreSQL table
//
// Both event stores implement domain.EventStore and are safe for concurrent
// use.
package store
