package apperr

import "net/http"

// Code is the closed set of error kinds the API can return.
type Code int

const (
	CodeBadRequest Code = iota
	CodeUnauthorized
	CodeNotFound
	CodeUnprocessableEntity
	CodeInternal
)

func (c Code) String() string {
	switch c {
	case CodeBadRequest:
		return "BAD_REQUEST"
	case CodeUnauthorized:
		return "UNAUTHORIZED"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeUnprocessableEntity:
		return "UNPROCESSABLE_ENTITY"
	default:
		return "INTERNAL"
	}
}

func (c Code) HTTPStatus() int {
	switch c {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnprocessableEntity:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a user-facing message and, for validation failures, a
// per-field message map.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

func BadRequest(msg string) *Error   { return &Error{Code: CodeBadRequest, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Code: CodeUnauthorized, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Code: CodeNotFound, Message: msg} }

func UnprocessableEntity(msg string, fields map[string]string) *Error {
	return &Error{Code: CodeUnprocessableEntity, Message: msg, Fields: fields}
}

func Internal(msg string) *Error { return &Error{Code: CodeInternal, Message: msg} }

// From returns err as *Error, wrapping anything unclassified as Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Code: CodeInternal, Message: err.Error()}
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, c Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == c
}
