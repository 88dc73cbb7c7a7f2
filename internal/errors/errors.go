package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound              = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists         = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation            = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation      = new(ErrCodeInvalidOperation, "invalid operation")
	ErrUnauthorized          = new(ErrCodeUnauthorized, "unauthorized")
	ErrPermissionDenied      = new(ErrCodePermissionDenied, "permission denied")
	ErrNoOrganizationContext = new(ErrCodeNoOrganizationContext, "no organization context")
	ErrSubscriptionPastDue   = new(ErrCodeSubscriptionPastDue, "subscription past due")
	ErrSubscriptionRequired  = new(ErrCodeSubscriptionRequired, "subscription required")
	ErrInvalidTransition     = new(ErrCodeInvalidTransition, "invalid status transition")
	ErrRecalculationFailed   = new(ErrCodeRecalculationFailed, "recalculation failed")
	ErrDatabase              = new(ErrCodeDatabase, "database error")
	ErrSystem                = new(ErrCodeSystemError, "system error")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrDatabase:              http.StatusInternalServerError,
		ErrNotFound:              http.StatusNotFound,
		ErrAlreadyExists:         http.StatusConflict,
		ErrValidation:            http.StatusBadRequest,
		ErrInvalidOperation:      http.StatusBadRequest,
		ErrUnauthorized:          http.StatusUnauthorized,
		ErrPermissionDenied:      http.StatusForbidden,
		ErrNoOrganizationContext: http.StatusBadRequest,
		ErrSubscriptionPastDue:   http.StatusPaymentRequired,
		ErrSubscriptionRequired:  http.StatusPaymentRequired,
		ErrInvalidTransition:     http.StatusConflict,
		ErrRecalculationFailed:   http.StatusInternalServerError,
		ErrSystem:                http.StatusInternalServerError,
	}

	// checked before the generic sentinels so the most specific code wins
	codeLookupOrder = []*InternalError{
		ErrSubscriptionPastDue,
		ErrSubscriptionRequired,
		ErrNoOrganizationContext,
		ErrUnauthorized,
		ErrPermissionDenied,
		ErrInvalidTransition,
		ErrRecalculationFailed,
		ErrNotFound,
		ErrAlreadyExists,
		ErrValidation,
		ErrInvalidOperation,
		ErrDatabase,
		ErrSystem,
	}
)

const (
	ErrCodeSystemError           = "system_error"
	ErrCodeNotFound              = "not_found"
	ErrCodeAlreadyExists         = "already_exists"
	ErrCodeValidation            = "validation_error"
	ErrCodeInvalidOperation      = "invalid_operation"
	ErrCodeUnauthorized          = "unauthorized"
	ErrCodePermissionDenied      = "permission_denied"
	ErrCodeNoOrganizationContext = "no_organization_context"
	ErrCodeSubscriptionPastDue   = "subscription_past_due"
	ErrCodeSubscriptionRequired  = "subscription_required"
	ErrCodeInvalidTransition     = "invalid_transition"
	ErrCodeRecalculationFailed   = "recalculation_failed"
	ErrCodeDatabase              = "database_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

func IsNoOrganizationContext(err error) bool {
	return errors.Is(err, ErrNoOrganizationContext)
}

// IsSubscriptionBlocked reports either of the billing gate denials
func IsSubscriptionBlocked(err error) bool {
	return errors.Is(err, ErrSubscriptionPastDue) || errors.Is(err, ErrSubscriptionRequired)
}

func HTTPStatusFromErr(err error) int {
	for _, e := range codeLookupOrder {
		if errors.Is(err, e) {
			return statusCodeMap[e]
		}
	}
	return http.StatusInternalServerError
}

// CodeFromErr returns the stable machine-readable code clients branch on
func CodeFromErr(err error) string {
	for _, e := range codeLookupOrder {
		if errors.Is(err, e) {
			return e.Code
		}
	}
	return ErrCodeSystemError
}
