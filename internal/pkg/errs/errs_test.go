package errs_test

import (
	"errors"
	"testing"

	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("0 is not greater than 0")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, "value is invalid: quantity (cause: 0 is not greater than 0)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("sanitize removes newlines", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("first\nsecond")
		assert.Contains(t, err.Error(), "first second")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("username")

	assert.Equal(t, "username", err.ParamName)
	assert.Equal(t, "value is required: username", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestAuthenticationError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewAuthenticationError("jdoe")

		assert.Equal(t, "jdoe", err.Username)
		assert.Equal(t, `authentication failed: check username and password for "jdoe"`, err.Error())
		assert.Equal(t, errs.ErrAuthentication, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("user is inactive")
		err := errs.NewAuthenticationErrorWithCause("jdoe", cause)

		assert.Contains(t, err.Error(), "(cause: user is inactive)")
		assert.True(t, errors.Is(err, errs.ErrAuthentication))
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("table", "Available", "Dirty")

	assert.Equal(t, "invalid status transition: table cannot go from Available to Dirty", err.Error())
	assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
}

func TestTableNotAvailableError(t *testing.T) {
	t.Run("should name the blocking status for an occupied table", func(t *testing.T) {
		err := errs.NewTableNotAvailableError(7, "Occupied")

		assert.Equal(t, 7, err.TableNumber)
		assert.Equal(t, "table is not available: table 7 is Occupied", err.Error())
		assert.True(t, errors.Is(err, errs.ErrTableNotAvailable))
	})

	t.Run("should name the blocking status for a dirty table", func(t *testing.T) {
		err := errs.NewTableNotAvailableError(4, "Dirty")

		assert.Equal(t, "table is not available: table 4 is Dirty", err.Error())
	})
}

func TestOrderClosedError(t *testing.T) {
	err := errs.NewOrderClosedError("o-1", "Paid")

	assert.Equal(t, "order is closed: order o-1 is Paid and can no longer be modified", err.Error())
	assert.True(t, errors.Is(err, errs.ErrOrderClosed))
}

func TestTimeClockErrors(t *testing.T) {
	t.Run("AlreadyClockedInError", func(t *testing.T) {
		err := errs.NewAlreadyClockedInError("u-3")

		assert.Equal(t, "already clocked in: user u-3 must clock out before clocking in again", err.Error())
		assert.True(t, errors.Is(err, errs.ErrAlreadyClockedIn))
	})

	t.Run("NotClockedInError", func(t *testing.T) {
		err := errs.NewNotClockedInError("u-3")

		assert.Equal(t, "not clocked in: user u-3 has no open shift", err.Error())
		assert.True(t, errors.Is(err, errs.ErrNotClockedIn))
	})
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewStorageError("save order", cause)

	assert.Equal(t,
		"storage failure during save order, change kept locally and sync is pending (cause: connection refused)",
		err.Error())
	assert.True(t, errors.Is(err, errs.ErrStorage))
}
