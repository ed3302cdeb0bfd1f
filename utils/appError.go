package utils

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies an AppError and decides the HTTP status it is rendered with.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// AppError is the error type returned by the service layer.
// Message is safe to show to clients; Err is the underlying cause, if any.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches on Kind and Code so callers can compare against the sentinels below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func newError(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

var (
	ErrMissingFields      = newError(KindValidation, "MISSING_FIELDS", "Title and description are required")
	ErrInvalidPriority    = newError(KindValidation, "INVALID_PRIORITY", "Invalid priority. Valid priorities: low, medium, high")
	ErrInvalidStatus      = newError(KindValidation, "INVALID_STATUS", "Invalid status. Valid statuses: pending, in-progress, resolved")
	ErrInvalidTransition  = newError(KindValidation, "INVALID_TRANSITION", "This status change is not allowed")
	ErrMissingTechnician  = newError(KindValidation, "MISSING_TECHNICIAN", "Technician ID is required")
	ErrUnknownTechnician  = newError(KindValidation, "UNKNOWN_TECHNICIAN", "Technician does not exist")
	ErrBadRegisterNumber  = newError(KindValidation, "BAD_REGISTER_NUMBER", "Invalid register number format (e.g., 23MIS0145)")
	ErrInvalidRole        = newError(KindValidation, "INVALID_ROLE", "Invalid role. Valid roles: student, technician, admin, warden")
	ErrPasswordTooShort   = newError(KindValidation, "TOO_SHORT", "New password must be at least 6 characters")
	ErrInvalidCredentials = newError(KindAuth, "INVALID_CREDENTIALS", "Invalid email or password")
	ErrWrongPassword      = newError(KindAuth, "WRONG_CURRENT_PASSWORD", "Current password is incorrect")
	ErrInvalidToken       = newError(KindAuth, "INVALID_TOKEN", "Invalid or expired token")
	ErrForbidden          = newError(KindForbidden, "FORBIDDEN", "You are not allowed to access this resource")
	ErrUserNotFound       = newError(KindNotFound, "USER_NOT_FOUND", "User not found")
	ErrTicketNotFound     = newError(KindNotFound, "TICKET_NOT_FOUND", "Maintenance request not found")
	ErrTaskNotFound       = newError(KindNotFound, "TASK_NOT_FOUND", "Task not found or not assigned to you")
	ErrEmailTaken         = newError(KindConflict, "EMAIL_TAKEN", "User already exists with this email")
	ErrUsernameTaken      = newError(KindConflict, "USERNAME_TAKEN", "Username already taken")
	ErrRegisterNoTaken    = newError(KindConflict, "REGISTER_NUMBER_TAKEN", "Register number already registered")
	ErrAlreadyExists      = newError(KindConflict, "CONFLICT", "A record with the same unique value already exists")
)

// Internal wraps an unexpected failure. op names the operation for logs.
func Internal(op string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: "INTERNAL", Message: op, Err: err}
}

// IsUniqueViolation reports whether err came from a unique constraint. Drivers
// that do not translate errors are recognised by their message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
