package service

import "fmt"

// ValidationError reports invalid caller input. It is checked before any
// write, so a validation failure never leaves partial state behind.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
