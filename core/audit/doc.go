// Package audit persists a trail of sync runs and the write operations
// they applied to destination instances.
//
// The trail answers "what did we push, where, and when" after the fact:
// one SyncRun row per pipeline execution and one Operation row per applied
// add or update. Auditing is optional; when the database is unavailable the
// sync itself must proceed, so callers log audit failures and move on.
//
// # Schema
//
// Store.Migrate creates the two tables via GORM auto-migration. Records are
// append-only; nothing in the application updates or deletes them.
package audit
