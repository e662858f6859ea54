// Package audit durably stores the audit-record projection of finalized
// cases. The audit record is a pure projection of the case record (who,
// what was determined, what was recommended, what the reviewer decided);
// storing it is the last act of a completed run.
//
// The backend is SQLite via the pure-Go modernc.org/sqlite driver, so the
// audit trail survives restarts without cgo.
package audit
