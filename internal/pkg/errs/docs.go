// Package errs provides standardized error types for the tableside application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes generic error types for common scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//
// and the business error taxonomy of the coordination core:
//   - AuthenticationError: bad credentials or an inactive user
//   - InvalidTransitionError: a state-machine rule was violated
//   - TableNotAvailableError: the table already has an active order
//   - OrderClosedError: a mutation was attempted on a terminal order
//   - AlreadyClockedInError / NotClockedInError: time-clock invariant violations
//   - StorageError: a persistence collaborator failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method producing a human-readable, single-line message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Every message is written so that a staff member reading it knows what to do
// next; callers are expected to surface these messages verbatim.
package errs
