package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure class independent of its HTTP mapping.
type ErrorCode string

// AppError is the application error carried from services to the request
// boundary.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets a WithDetails/WithError clone still match its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predeclared errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound       = NewNotFoundError(CodeUserNotFound, "User not found")
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 6 characters", http.StatusBadRequest)
	ErrInvalidUserRole    = New(CodeInvalidUserRole, "Invalid user role", http.StatusBadRequest)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// Work lifecycle
	ErrWorkNotFound        = NewNotFoundError(CodeWorkNotFound, "Work not found")
	ErrNotWorkOwner        = New(CodeForbidden, "Only the employer of this work may do that", http.StatusForbidden)
	ErrInvalidTransition   = New(CodeInvalidTransition, "Illegal work status transition", http.StatusBadRequest)
	ErrNoUpdatableFields   = New(CodeNoUpdatableFields, "No updatable field in request", http.StatusBadRequest)
	ErrCannotApplyOwnWork  = New(CodeCannotApplyOwnWork, "Cannot apply to your own work", http.StatusBadRequest)
	ErrAlreadyApplied      = New(CodeAlreadyApplied, "Already applied to this work", http.StatusConflict)
	ErrWorkNotOpen         = New(CodeWorkNotOpen, "Work is not open for applications", http.StatusBadRequest)
	ErrApplicationNotFound = NewNotFoundError(CodeApplicationNotFound, "Application not found")
	ErrApplicationDecided  = New(CodeApplicationFinal, "Application has already been decided", http.StatusBadRequest)

	// Completion-code protocol
	ErrCodeNotFound      = NewNotFoundError(CodeCodeNotFound, "No active completion code for this work")
	ErrIncorrectCode     = New(CodeIncorrectCode, "Incorrect completion code", http.StatusBadRequest)
	ErrTooManyAttempts   = New(CodeTooManyAttempts, "Too many failed attempts, verification temporarily locked", http.StatusTooManyRequests)
	ErrWorkNotInProgress = New(CodeWorkNotInProgress, "Work is not in progress", http.StatusBadRequest)
	ErrInvalidScanFormat = New(CodeInvalidScanPayload, "Invalid code format", http.StatusBadRequest)
)

// Helpers for building errors with details
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(code ErrorCode, message string) *AppError {
	return New(code, message, http.StatusNotFound)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
