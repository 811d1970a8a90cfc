package errors

import (
	"fmt"
	"net/http"

	"github.com/parkpal/parkpal-backend/logger"
)

type ErrorType string

const (
	ValidationError   ErrorType = "VALIDATION_ERROR"
	NotFoundError     ErrorType = "NOT_FOUND"
	DatabaseError     ErrorType = "DATABASE_ERROR"
	ServerError       ErrorType = "SERVER_ERROR"
	ForbiddenError    ErrorType = "FORBIDDEN"
	RateLimitError    ErrorType = "RATE_LIMITED"
	SpaceNotFoundErr  ErrorType = "SPACE_NOT_FOUND"
	BookingStateError ErrorType = "INVALID_BOOKING_STATE"
	CommerceError     ErrorType = "COMMERCE_ERROR"
	PaymentError      ErrorType = "PAYMENT_ERROR"
	ConflictError     ErrorType = "CONFLICT"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the wrapped raw error for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code for the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError, SpaceNotFoundErr:
		return http.StatusNotFound
	case ForbiddenError:
		return http.StatusForbidden
	case RateLimitError:
		return http.StatusTooManyRequests
	case BookingStateError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case CommerceError, PaymentError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Helper functions for common errors

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewDatabaseError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func Forbidden(message string, details string) *AppError {
	return &AppError{
		Type:       ForbiddenError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusForbidden,
	}
}

func RateLimited(retryAfter string) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    "Too many requests",
		Detail:     fmt.Sprintf("Retry after %s", retryAfter),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func SpaceNotFound(id string) *AppError {
	return &AppError{
		Type:       SpaceNotFoundErr,
		Message:    "Parking space not found",
		Detail:     fmt.Sprintf("Space ID: %s", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func SpaceUnavailable(id string) *AppError {
	return &AppError{
		Type:       ConflictError,
		Message:    "Parking space is fully booked",
		Detail:     fmt.Sprintf("Space ID: %s", id),
		HTTPStatus: http.StatusConflict,
	}
}

func InvalidBookingState(current, requested string) *AppError {
	return &AppError{
		Type:       BookingStateError,
		Message:    "Invalid booking state transition",
		Detail:     fmt.Sprintf("Cannot transition from %s to %s", current, requested),
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewCommerceError(err error, operation string) *AppError {
	logger.GetLogger().Errorw("Commerce platform error", "operation", operation, "error", err)
	return &AppError{
		Type:       CommerceError,
		Message:    "Commerce platform request failed",
		Detail:     operation,
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

func NewPaymentError(err error, operation string) *AppError {
	logger.GetLogger().Errorw("Payment processor error", "operation", operation, "error", err)
	return &AppError{
		Type:       PaymentError,
		Message:    "Payment processing failed",
		Detail:     operation,
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}
