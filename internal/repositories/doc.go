// Package repositories implements SQLite persistence for the grab session journal.
//
// The journal remembers when each grab ran, against which node, how every step ended and
// the final outcome. It never stores mirrored content.
//
// Key Implementations:
//   - [SessionRepository] : Session CRUD with soft deletes, plus per-step outcomes
//   - [Journal] : Adapter that lets the grab orchestrator record sessions as they run
//
// Sequence numbers provide stable, human-readable ordering (e.g., session #42) independent of UUIDs and start timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
