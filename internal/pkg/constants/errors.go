package constants

import "net/http"

// CodedError is an error that carries the HTTP status code it should be
// reported with. The api error handler unwraps down to the first CodedError.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrRefreshInProgress = NewCodedError(http.StatusConflict, "order refresh already in progress")
	ErrInvalidDateRange  = NewCodedError(http.StatusBadRequest, "end_date is before start_date")
	ErrBadRequest        = NewCodedError(http.StatusBadRequest, "bad request")
)
