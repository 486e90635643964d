package domain

import (
	"errors"
	"fmt"
)

// Error codes carried by domain errors.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "RESOURCE_NOT_FOUND"
	CodePersistence = "PERSISTENCE_ERROR"
)

// ErrRecordNotFound is returned by repository adapters when no record
// matches the requested id.
var ErrRecordNotFound = errors.New("record not found")

// BusinessError is a domain failure with a machine-readable code.
// Err, when set, is the underlying cause; it is kept for logs and never
// becomes part of Message.
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func NewBusinessError(code, message string, cause error) *BusinessError {
	return &BusinessError{Code: code, Message: message, Err: cause}
}

func (e *BusinessError) Error() string { return e.Message }

func (e *BusinessError) Unwrap() error { return e.Err }

// ErrorCode returns the machine-readable code.
func (e *BusinessError) ErrorCode() string { return e.Code }

// ValidationError reports a product that breaks a business invariant.
type ValidationError struct {
	BusinessError
}

// NewValidationError builds a validation error with the default code.
func NewValidationError(message string) *ValidationError {
	return NewValidationErrorWithCode(message, CodeValidation)
}

// NewValidationErrorWithCode lets the call site pick a more specific code.
func NewValidationErrorWithCode(message, code string) *ValidationError {
	return &ValidationError{BusinessError{Code: code, Message: message}}
}

// NotFoundError reports a reference to an entity that does not exist.
type NotFoundError struct {
	BusinessError
	ResourceType string
	ID           string
}

func NewNotFoundError(resourceType string, id any) *NotFoundError {
	sid := fmt.Sprint(id)
	return &NotFoundError{
		BusinessError: BusinessError{
			Code:    CodeNotFound,
			Message: fmt.Sprintf("%s with identifier %s was not found", resourceType, sid),
		},
		ResourceType: resourceType,
		ID:           sid,
	}
}
