package utils

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInternalServer      = errors.New("internal server error")
	ErrTransport           = errors.New("provider transport error")
	ErrStructuralMismatch  = errors.New("provider response shape mismatch")
	ErrTaxonomyUnresolved  = errors.New("stat taxonomy unresolved")
	ErrSeasonUnresolved    = errors.New("season unresolved")
	ErrStandingsUnresolved = errors.New("standings unresolved")
	ErrEmptyRoster         = errors.New("roster parsed to zero athletes")
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewAppError(code string, message string, details ...string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common error codes
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeSyncFailed   = "SYNC_FAILED"
	ErrCodeProvider     = "PROVIDER_ERROR"
	ErrCodeTradeInput   = "INVALID_TRADE"
)
