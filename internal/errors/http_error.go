package errors

import (
	stderrors "errors"
	"net/http"

	"autorenta/internal/repository"
	"autorenta/internal/service"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// FromError maps service failures onto HTTP status codes. Consistency
// failures and anything unrecognized surface as a generic 500; their
// details stay in the logs.
func FromError(err error) *HTTPError {
	var (
		invalidRequest *service.InvalidRequestError
		noVehicle      *service.NoVehicleAvailableError
		invalidState   *service.InvalidStateError
	)
	switch {
	case stderrors.Is(err, repository.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found")
	case stderrors.As(err, &invalidRequest):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case stderrors.As(err, &noVehicle):
		return NewHTTPError(http.StatusConflict, err.Error())
	case stderrors.As(err, &invalidState):
		return NewHTTPError(http.StatusConflict, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
