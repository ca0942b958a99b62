package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the business error taxonomy.
var (
	ErrAuthentication    = errors.New("authentication failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTableNotAvailable = errors.New("table is not available")
	ErrOrderClosed       = errors.New("order is closed")
	ErrAlreadyClockedIn  = errors.New("already clocked in")
	ErrNotClockedIn      = errors.New("not clocked in")
	ErrStorage           = errors.New("storage failure")
)

// AuthenticationError indicates that a login attempt was rejected, either
// because the credentials did not match or because the account is inactive.
// The message deliberately does not reveal which of the two it was.
type AuthenticationError struct {
	Username string
	Cause    error
}

// NewAuthenticationError creates an AuthenticationError for the given username.
func NewAuthenticationError(username string) *AuthenticationError {
	return &AuthenticationError{Username: username}
}

// NewAuthenticationErrorWithCause creates an AuthenticationError wrapping a cause.
func NewAuthenticationErrorWithCause(username string, cause error) *AuthenticationError {
	return &AuthenticationError{Username: username, Cause: cause}
}

func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: check username and password for %q (cause: %s)",
			ErrAuthentication, e.Username, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: check username and password for %q", ErrAuthentication, e.Username))
}

func (e *AuthenticationError) Unwrap() error {
	return ErrAuthentication
}

// InvalidTransitionError indicates that a requested status change violates the
// state machine of the named entity. From and To carry the human-readable
// status names.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// entity kind and the rejected transition.
func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s cannot go from %s to %s",
		ErrInvalidTransition, e.Entity, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// TableNotAvailableError indicates that an order could not be opened because
// the table already has an active order or is not in the Available status.
// Status records the table's status at the time of the rejection so the
// message tells staff what is actually blocking the seat.
type TableNotAvailableError struct {
	TableNumber int
	Status      string
}

// NewTableNotAvailableError creates a TableNotAvailableError for the given
// table number and its current status.
func NewTableNotAvailableError(tableNumber int, status string) *TableNotAvailableError {
	return &TableNotAvailableError{TableNumber: tableNumber, Status: status}
}

func (e *TableNotAvailableError) Error() string {
	return sanitize(fmt.Sprintf("%s: table %d is %s", ErrTableNotAvailable, e.TableNumber, e.Status))
}

func (e *TableNotAvailableError) Unwrap() error {
	return ErrTableNotAvailable
}

// OrderClosedError indicates that a mutation was attempted on an order that is
// already in a terminal status.
type OrderClosedError struct {
	OrderID string
	Status  string
}

// NewOrderClosedError creates an OrderClosedError for the given order and its
// terminal status.
func NewOrderClosedError(orderID, status string) *OrderClosedError {
	return &OrderClosedError{OrderID: orderID, Status: status}
}

func (e *OrderClosedError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %s is %s and can no longer be modified",
		ErrOrderClosed, e.OrderID, e.Status))
}

func (e *OrderClosedError) Unwrap() error {
	return ErrOrderClosed
}

// AlreadyClockedInError indicates that a clock-in was attempted while the user
// already has an open time record.
type AlreadyClockedInError struct {
	UserID string
}

// NewAlreadyClockedInError creates an AlreadyClockedInError for the given user.
func NewAlreadyClockedInError(userID string) *AlreadyClockedInError {
	return &AlreadyClockedInError{UserID: userID}
}

func (e *AlreadyClockedInError) Error() string {
	return sanitize(fmt.Sprintf("%s: user %s must clock out before clocking in again",
		ErrAlreadyClockedIn, e.UserID))
}

func (e *AlreadyClockedInError) Unwrap() error {
	return ErrAlreadyClockedIn
}

// NotClockedInError indicates that a clock-out was attempted while the user
// has no open time record.
type NotClockedInError struct {
	UserID string
}

// NewNotClockedInError creates a NotClockedInError for the given user.
func NewNotClockedInError(userID string) *NotClockedInError {
	return &NotClockedInError{UserID: userID}
}

func (e *NotClockedInError) Error() string {
	return sanitize(fmt.Sprintf("%s: user %s has no open shift", ErrNotClockedIn, e.UserID))
}

func (e *NotClockedInError) Unwrap() error {
	return ErrNotClockedIn
}

// StorageError indicates that the persistence collaborator failed during the
// named operation. The in-memory transition it accompanied is not rolled back;
// callers should present a "saved locally, sync pending" style warning.
type StorageError struct {
	Op    string
	Cause error
}

// NewStorageError creates a StorageError for the failed operation.
func NewStorageError(op string, cause error) *StorageError {
	return &StorageError{Op: op, Cause: cause}
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s during %s, change kept locally and sync is pending (cause: %s)",
			ErrStorage, e.Op, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s during %s, change kept locally and sync is pending", ErrStorage, e.Op))
}

func (e *StorageError) Unwrap() error {
	return ErrStorage
}
