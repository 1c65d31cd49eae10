package shared

import (
	"errors"
	"fmt"
)

// DomainError is a business-rule violation on otherwise valid input
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

func NewDomainErrorf(format string, args ...interface{}) *DomainError {
	return &DomainError{Message: fmt.Sprintf(format, args...)}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a referenced entity that does not exist
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// ConsistencyError reports a concurrent mutation that slipped past serialization
type ConsistencyError struct {
	Message string
	Err     error
}

func (e *ConsistencyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("consistency violation: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("consistency violation: %s", e.Message)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

func NewConsistencyError(message string, err error) *ConsistencyError {
	return &ConsistencyError{Message: message, Err: err}
}

// IsValidation reports whether err wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsDomain reports whether err wraps a DomainError
func IsDomain(err error) bool {
	var target *DomainError
	return errors.As(err, &target)
}

// IsNotFound reports whether err wraps a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConsistency reports whether err wraps a ConsistencyError
func IsConsistency(err error) bool {
	var target *ConsistencyError
	return errors.As(err, &target)
}
