// Package errs defines the application error taxonomy shared by services,
// repositories, and controllers. Controllers translate these sentinels to
// HTTP status codes; everything below the controllers wraps or returns them
// directly.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation covers malformed or missing caller input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated covers missing, invalid, or expired tokens.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden covers authenticated callers acting outside their role
	// or deciding a step assigned to someone else.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound covers unknown documents, records, templates, and users.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState covers decisions against the wrong step or against a
	// document already in a terminal state.
	ErrInvalidState = errors.New("invalid state")

	// ErrAlreadyDecided covers a second decision on a resolved approval record.
	ErrAlreadyDecided = errors.New("already decided")

	// ErrInfrastructure covers backing-store failures. Detail goes to the
	// log; callers only ever see a generic failure.
	ErrInfrastructure = errors.New("infrastructure failure")
)

// HTTPStatus maps a taxonomy error to the status code controllers respond with.
// Unrecognized errors are treated as infrastructure failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrAlreadyDecided):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
