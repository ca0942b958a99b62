// Package coordinator implements the coordination service: the single
// process-wide owner of the live tables, open orders, staff and shift state.
// It is the only component permitted to mutate shared entity state.
//
// Every mutating operation takes the service's write lock, validates the
// requested transition against the relevant state machine, applies it, and
// persists the affected aggregates. Table-status changes are then published
// through the notification bus outside the lock, so listener code can never
// block a mutation.
//
// Persistence is synchronous but best-effort: a storage failure surfaces as a
// *errs.StorageError without rolling back the in-memory transition, and the
// affected aggregate joins a pending-write set that FlushPending retries.
// In-memory state is authoritative for the session; the database catches up.
//
// Lookups come in two families. Strict lookups (used inside mutations) fail
// with *errs.ObjectNotFoundError. Tolerant Find* lookups return nil for
// absent objects so display components can fall back to placeholder text.
package coordinator
