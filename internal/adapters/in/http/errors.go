package http

import (
	"errors"
	"net/http"

	"tableside/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps domain errors to HTTP status codes. Conflicting state
// transitions are 409, absent objects 404, bad input 400, failed logins 401.
// A storage failure is 502: the change is kept locally and syncs later, but
// the client should know the write did not land.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	var (
		transitionErr   *errs.InvalidTransitionError
		notAvailableErr *errs.TableNotAvailableError
		closedErr       *errs.OrderClosedError
		clockedInErr    *errs.AlreadyClockedInError
		notClockedErr   *errs.NotClockedInError
		notFoundErr     *errs.ObjectNotFoundError
		authErr         *errs.AuthenticationError
		storageErr      *errs.StorageError
	)

	switch {
	case errors.As(err, &transitionErr),
		errors.As(err, &notAvailableErr),
		errors.As(err, &closedErr),
		errors.As(err, &clockedInErr),
		errors.As(err, &notClockedErr):
		status = http.StatusConflict
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
	case errors.As(err, &authErr):
		status = http.StatusUnauthorized
	case errors.As(err, &storageErr):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
