package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeExternal   ErrorType = "EXTERNAL_ERROR"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeInvalidFormat        ErrorCode = "INVALID_FORMAT"
	ErrCodeFutureDateNotAllowed ErrorCode = "FUTURE_DATE_NOT_ALLOWED"
	ErrCodeInvalidAmount        ErrorCode = "INVALID_AMOUNT"
	ErrCodeUnsupportedCurrency  ErrorCode = "UNSUPPORTED_CURRENCY"
	ErrCodeEmptyField           ErrorCode = "EMPTY_FIELD"
	ErrCodeUnknownField         ErrorCode = "UNKNOWN_FIELD"
	ErrCodeMissingPairedField   ErrorCode = "MISSING_PAIRED_FIELD"
	ErrCodeNoEffectiveChange    ErrorCode = "NO_EFFECTIVE_CHANGE"
	ErrCodeNoChangesRequested   ErrorCode = "NO_CHANGES_REQUESTED"
	ErrCodeNoFilterProvided     ErrorCode = "NO_FILTER_PROVIDED"
	ErrCodeInvalidRange         ErrorCode = "INVALID_RANGE"

	ErrCodeConversionUnavailable ErrorCode = "CONVERSION_UNAVAILABLE"
	ErrCodeRateNotFound          ErrorCode = "RATE_NOT_FOUND"

	ErrCodeExpenseNotFound  ErrorCode = "EXPENSE_NOT_FOUND"
	ErrCodePersistenceError ErrorCode = "PERSISTENCE_ERROR"
)

// AppError is the single error representation every operation returns:
// a closed code from the set above, an HTTP mapping, and an optional
// wrapped cause kept for diagnostics but never exposed to callers.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Field      string    `json:"field,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	err := *e
	err.Cause = cause
	return &err
}

func (e *AppError) WithField(field string) *AppError {
	err := *e
	err.Field = field
	return &err
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewExternalError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadGateway,
	}
}

func NewPersistenceError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodePersistenceError,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrExpenseNotFound = NewNotFoundError("expense not found", ErrCodeExpenseNotFound)

	ErrNoChangesRequested = NewValidationError("no updatable fields were provided", ErrCodeNoChangesRequested)
	ErrNoFilterProvided   = NewValidationError("at least one filter is required to list expenses", ErrCodeNoFilterProvided)
	ErrMissingPairedField = NewValidationError("original_amount and currency must be updated together", ErrCodeMissingPairedField)

	ErrConversionUnavailable = NewExternalError("currency conversion is unavailable", ErrCodeConversionUnavailable)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
		Field   string    `json:"field,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Field:   e.Field,
	})
}
