package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	AccountNotFound   ErrorCode = "account_not_found"
	DuplicateIdentity ErrorCode = "duplicate_identity"
	InvalidAmount     ErrorCode = "invalid_amount"
	InsufficientFunds ErrorCode = "insufficient_funds"
	TransferFailed    ErrorCode = "transfer_failed"
	InvalidCredential ErrorCode = "invalid_credential"
	InvalidInput      ErrorCode = "invalid_input"
	InternalError     ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any AppError carrying the same code, so errors.Is works
// against the predefined values below regardless of details.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy of e carrying details; predefined errors stay untouched.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// HTTPStatus maps the error code to a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case AccountNotFound:
		return http.StatusNotFound
	case DuplicateIdentity:
		return http.StatusConflict
	case InvalidAmount, InvalidInput:
		return http.StatusBadRequest
	case InsufficientFunds, TransferFailed:
		return http.StatusUnprocessableEntity
	case InvalidCredential:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrAccountNotFound   = NewAppError(AccountNotFound, "account not found")
	ErrDuplicateIdentity = NewAppError(DuplicateIdentity, "account already exists")
	ErrInvalidAmount     = NewAppError(InvalidAmount, "amount must be greater than zero")
	ErrInsufficientFunds = NewAppError(InsufficientFunds, "insufficient funds")
	ErrTransferFailed    = NewAppError(TransferFailed, "transfer failed, check account details or balance")
	ErrInvalidCredential = NewAppError(InvalidCredential, "invalid credentials")
	ErrInvalidInput      = NewAppError(InvalidInput, "invalid input")
)

// Internal wraps an unexpected failure as an internal_error.
func Internal(message string, err error) *AppError {
	appErr := NewAppError(InternalError, message)
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}
