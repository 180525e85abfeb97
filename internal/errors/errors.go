package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Fields     []FieldError
}

// FieldError is one field-level validation failure, rendered to the client
// as part of a 422 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NewValidation(message string, fields ...FieldError) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnprocessableEntity, Fields: fields}
}

func NewUnauthenticated(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

func NewForbidden(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

func NewNotFound(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func statusCode(err error) int {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

func IsForbidden(err error) bool {
	return statusCode(err) == http.StatusForbidden
}

func IsUnauthenticated(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

func IsValidation(err error) bool {
	return statusCode(err) == http.StatusUnprocessableEntity
}
