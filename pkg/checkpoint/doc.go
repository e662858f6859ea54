// Package checkpoint persists case records at the human-review suspension
// boundary.
//
// # Overview
//
// The workflow engine saves a durable snapshot of the case record when it
// enters Review and loads it again when the reviewer's decision arrives.
// Save returns an opaque token; Load resolves a token back to a record.
// Two backends are provided:
//   - MemoryStore: process-local, for tests and single-shot runs
//   - SQLiteStore: durable, WAL-mode SQLite file
//
// A cron-scheduled Pruner ages out checkpoints whose reviewer decision
// never arrived, bounding suspension duration at the storage boundary.
package checkpoint
