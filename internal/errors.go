package internal

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorType string

const (
	ErrorTypePermissionDenied   ErrorType = "PERMISSION_DENIED"
	ErrorTypeDuplicateValue     ErrorType = "DUPLICATE_VALUE"
	ErrorTypeValidation         ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound           ErrorType = "NOT_FOUND"
	ErrorTypeStorageUnavailable ErrorType = "STORAGE_UNAVAILABLE"
	ErrorTypeUnauthorized       ErrorType = "UNAUTHORIZED"
	ErrorTypeCancelled          ErrorType = "CANCELLED"
)

type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidEmail       ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidAmount      ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidStatus      ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidRole        ErrorCode = "INVALID_ROLE"
	ErrCodeInvalidDate        ErrorCode = "INVALID_DATE"
	ErrCodeInvalidDateRange   ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidAttendees   ErrorCode = "INVALID_ATTENDEES"
	ErrCodeUnsupportedFilter  ErrorCode = "UNSUPPORTED_FILTER"
	ErrCodeContractNotSigned  ErrorCode = "CONTRACT_NOT_SIGNED"
	ErrCodeNotSupportRole     ErrorCode = "NOT_SUPPORT_ROLE"
	ErrCodeNotSalesRole       ErrorCode = "NOT_SALES_ROLE"
	ErrCodeConstraintViolated ErrorCode = "CONSTRAINT_VIOLATED"

	ErrCodeDuplicateValue ErrorCode = "DUPLICATE_VALUE"

	ErrCodeCollaboratorNotFound ErrorCode = "COLLABORATOR_NOT_FOUND"
	ErrCodeClientNotFound       ErrorCode = "CLIENT_NOT_FOUND"
	ErrCodeContractNotFound     ErrorCode = "CONTRACT_NOT_FOUND"
	ErrCodeEventNotFound        ErrorCode = "EVENT_NOT_FOUND"
	ErrCodeSelectionNotFound    ErrorCode = "SELECTION_NOT_FOUND"

	ErrCodeMissingCapability ErrorCode = "MISSING_CAPABILITY"
	ErrCodeNotOwner          ErrorCode = "NOT_OWNER"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeTooManyAttempts    ErrorCode = "TOO_MANY_ATTEMPTS"
	ErrCodeInvalidSession     ErrorCode = "INVALID_SESSION"
	ErrCodeSessionExpired     ErrorCode = "SESSION_EXPIRED"

	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"

	ErrCodeNoChanges ErrorCode = "NO_CHANGES"
	ErrCodeDeclined  ErrorCode = "DECLINED"
)

type AppError struct {
	Type    ErrorType   `json:"type"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Cause   error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// GetDetailedMessage joins every field message, for display to the operator.
func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

// Field returns the offending field of a duplicate or single-field validation error.
func (e *AppError) Field() string {
	if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
		return validationErrors.Errors[0].Field
	}
	return ""
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewDuplicateValueError(field, value string) *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicateValue,
		Code:    ErrCodeDuplicateValue,
		Message: "Duplicate value",
		Details: ValidationErrors{
			Errors: []ValidationError{
				{
					Field:   field,
					Message: fmt.Sprintf("The %s: %s is already in use.", strings.ReplaceAll(field, "_", " "), value),
					Code:    string(ErrCodeDuplicateValue),
				},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
	}
}

func NewPermissionDeniedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypePermissionDenied,
		Code:    code,
		Message: message,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Code:    code,
		Message: message,
	}
}

func NewStorageUnavailableError(cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorageUnavailable,
		Code:    ErrCodeStorageFailure,
		Message: "A database error occurred. Please try again later.",
		Cause:   cause,
	}
}

func NewCancelled(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeCancelled,
		Code:    code,
		Message: message,
	}
}

// MissingCapability builds the PermissionDenied error for a capability check.
func MissingCapability(capability string) *AppError {
	return NewPermissionDeniedError(
		fmt.Sprintf("You do not have permission to perform this action (%s).", capability),
		ErrCodeMissingCapability,
	).WithDetails(map[string]string{"capability": capability})
}

var (
	ErrNoChanges = NewCancelled("No modifications were made.", ErrCodeNoChanges)
	ErrDeclined  = NewCancelled("The operation has been canceled.", ErrCodeDeclined)

	ErrNotOwner = NewPermissionDeniedError("You can only modify records assigned to you.", ErrCodeNotOwner)

	ErrInvalidCredentials = NewUnauthorizedError("Incorrect username or password", ErrCodeInvalidCredentials)
	ErrTooManyAttempts    = NewUnauthorizedError("Too many login attempts. Please wait before retrying.", ErrCodeTooManyAttempts)
	ErrInvalidSession     = NewUnauthorizedError("Invalid session, please log in again", ErrCodeInvalidSession)
	ErrSessionExpired     = NewUnauthorizedError("Session has expired, please log in again", ErrCodeSessionExpired)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == t
}

// IsCancelled reports a negative outcome that is not a failure.
func IsCancelled(err error) bool {
	return IsType(err, ErrorTypeCancelled)
}
