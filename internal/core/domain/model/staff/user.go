package staff

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the NewUser factory method.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User represents a staff member. Users are long-lived reference data looked
// up by id; other entities hold the id, never a copy, so role and status edits
// are visible everywhere immediately.
type User struct {
	id            kernel.UUID
	username      string
	passwordHash  string
	firstName     string
	lastName      string
	role          Role
	contactNumber string
	active        bool

	isConstructed bool
}

// NewUser creates a User with the given attributes. The password hash is the
// bcrypt hash stored in the user table; this constructor is used both for new
// accounts and when rehydrating from persistence.
func NewUser(
	id kernel.UUID,
	username string,
	passwordHash string,
	firstName string,
	lastName string,
	role Role,
	contactNumber string,
	active bool,
) (*User, error) {
	if err := errors.Join(
		id.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	if username == "" {
		return nil, errs.NewValueIsRequiredError("username")
	}

	return &User{
		id:            id,
		username:      username,
		passwordHash:  passwordHash,
		firstName:     firstName,
		lastName:      lastName,
		role:          role,
		contactNumber: contactNumber,
		active:        active,
		isConstructed: true,
	}, nil
}

// Validate ensures the User instance was properly constructed.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Username returns the login name.
func (u *User) Username() string {
	return u.username
}

// PasswordHash returns the stored bcrypt hash, for persistence only.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// FirstName returns the user's first name.
func (u *User) FirstName() string {
	return u.firstName
}

// LastName returns the user's last name.
func (u *User) LastName() string {
	return u.lastName
}

// FullName returns "First Last" for display.
func (u *User) FullName() string {
	if u.firstName == "" {
		return u.lastName
	}
	if u.lastName == "" {
		return u.firstName
	}
	return u.firstName + " " + u.lastName
}

// Role returns the user's job function.
func (u *User) Role() Role {
	return u.role
}

// ContactNumber returns the user's phone number.
func (u *User) ContactNumber() string {
	return u.contactNumber
}

// IsActive reports whether the account may log in.
func (u *User) IsActive() bool {
	return u.active
}

// Authenticate checks the supplied password against the stored bcrypt hash
// and the active flag. Both failure modes return the same
// *errs.AuthenticationError so login responses do not reveal which check
// failed.
func (u *User) Authenticate(password string) error {
	if !u.active {
		return errs.NewAuthenticationErrorWithCause(u.username, errors.New("user is inactive"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return errs.NewAuthenticationError(u.username)
	}
	return nil
}

// HashPassword produces a bcrypt hash for storage in the user table.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
