package httpErrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest      = errors.New("Bad request")
	ErrNotFound        = errors.New("Not found")
	ErrUpstreamService = errors.New("Upstream service error")
	ErrInternalServer  = errors.New("Internal server error")
)

// RestErr is the structured error surfaced to API clients: an HTTP status,
// an error kind, and a cause message. Stack detail never leaves the server.
type RestErr interface {
	Status() int
	Error() string
	Causes() interface{}
}

type restError struct {
	ErrStatus int         `json:"status"`
	ErrError  string      `json:"error"`
	ErrCauses interface{} `json:"causes,omitempty"`
}

func (e restError) Status() int {
	return e.ErrStatus
}

func (e restError) Error() string {
	return fmt.Sprintf("status: %d - error: %s - causes: %v", e.ErrStatus, e.ErrError, e.ErrCauses)
}

func (e restError) Causes() interface{} {
	return e.ErrCauses
}

func NewRestError(status int, err string, causes interface{}) RestErr {
	return restError{
		ErrStatus: status,
		ErrError:  err,
		ErrCauses: causes,
	}
}

func NewBadRequestError(causes interface{}) RestErr {
	return restError{
		ErrStatus: http.StatusBadRequest,
		ErrError:  ErrBadRequest.Error(),
		ErrCauses: causes,
	}
}

func NewNotFoundError(causes interface{}) RestErr {
	return restError{
		ErrStatus: http.StatusNotFound,
		ErrError:  ErrNotFound.Error(),
		ErrCauses: causes,
	}
}

func NewUpstreamServiceError(causes interface{}) RestErr {
	return restError{
		ErrStatus: http.StatusInternalServerError,
		ErrError:  ErrUpstreamService.Error(),
		ErrCauses: causes,
	}
}

func NewInternalServerError(causes interface{}) RestErr {
	return restError{
		ErrStatus: http.StatusInternalServerError,
		ErrError:  ErrInternalServer.Error(),
		ErrCauses: causes,
	}
}

// ParseErrors maps any error onto a RestErr, defaulting to 500 so internal
// detail is never exposed with a misleading status.
func ParseErrors(err error) RestErr {
	var restErr RestErr
	if errors.As(err, &restErr) {
		return restErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError(err.Error())
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrUpstreamService):
		return NewUpstreamServiceError(err.Error())
	default:
		return NewInternalServerError(err.Error())
	}
}

// ErrorResponse returns the status and body for an error reply.
func ErrorResponse(err error) (int, interface{}) {
	restErr := ParseErrors(err)
	return restErr.Status(), restErr
}
