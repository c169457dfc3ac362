package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is not in a state that allows the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates that the caller may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code together with the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Kind classifies a rule failure so callers can decide between correcting input,
// switching to a reversal flow or surfacing a permission problem.
type Kind string

const (
	KindHeader     Kind = "HEADER"
	KindPolicy     Kind = "POLICY"
	KindReference  Kind = "REFERENCE"
	KindLifecycle  Kind = "LIFECYCLE"
	KindPermission Kind = "PERMISSION"
)

// RuleError is a business rule failure with a stable, caller-facing message.
type RuleError struct {
	Kind    Kind
	Message string
}

// NewRuleError creates a RuleError of the given kind.
func NewRuleError(kind Kind, message string) *RuleError {
	return &RuleError{Kind: kind, Message: message}
}

func (e *RuleError) Error() string {
	return e.Message
}

// Is lets a RuleError match the generic sentinel of its kind, so handlers can
// keep using errors.Is(err, ErrValidation) and friends.
func (e *RuleError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindHeader || e.Kind == KindPolicy || e.Kind == KindReference
	case ErrConflict:
		return e.Kind == KindLifecycle
	case ErrForbidden:
		return e.Kind == KindPermission
	}
	return false
}

// KindOf returns the rule kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Kind, true
	}
	return "", false
}
