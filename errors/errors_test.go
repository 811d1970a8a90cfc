package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "field required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "field required", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestWrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrappedErr := Wrap(originalErr, DatabaseError, "database operation failed")

	assert.Equal(t, DatabaseError, wrappedErr.Type)
	assert.Equal(t, "database operation failed", wrappedErr.Message)
	assert.Equal(t, originalErr.Error(), wrappedErr.Detail)
	assert.Equal(t, 500, wrappedErr.HTTPStatus)
	assert.Equal(t, originalErr, wrappedErr.Raw)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, DatabaseError, "should be nil"))
}

func TestNotFound(t *testing.T) {
	err := NotFound("User", 123)
	assert.Equal(t, NotFoundError, err.Type)
	assert.Equal(t, "User not found", err.Message)
	assert.Equal(t, "ID: 123", err.Detail)
	assert.Equal(t, 404, err.HTTPStatus)
}

func TestSpaceNotFound(t *testing.T) {
	err := SpaceNotFound("space-42")
	assert.Equal(t, SpaceNotFoundErr, err.Type)
	assert.Equal(t, "Parking space not found", err.Message)
	assert.Equal(t, 404, err.HTTPStatus)
}

func TestSpaceUnavailable(t *testing.T) {
	err := SpaceUnavailable("space-42")
	assert.Equal(t, ConflictError, err.Type)
	assert.Equal(t, 409, err.HTTPStatus)
}

func TestInvalidBookingState(t *testing.T) {
	err := InvalidBookingState("cancelled", "confirmed")
	assert.Equal(t, BookingStateError, err.Type)
	assert.Equal(t, "Cannot transition from cancelled to confirmed", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestNewDatabaseError(t *testing.T) {
	originalErr := fmt.Errorf("connection failed")
	err := NewDatabaseError(originalErr)
	assert.Equal(t, DatabaseError, err.Type)
	assert.Equal(t, "Database operation failed", err.Message)
	assert.Equal(t, 500, err.HTTPStatus)
	assert.Equal(t, originalErr, err.Raw)
}

func TestNewCommerceError(t *testing.T) {
	originalErr := fmt.Errorf("status 503")
	err := NewCommerceError(originalErr, "create order")
	assert.Equal(t, CommerceError, err.Type)
	assert.Equal(t, "create order", err.Detail)
	assert.Equal(t, 502, err.HTTPStatus)
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name: "with detail",
			err: &AppError{
				Type:    ValidationError,
				Message: "invalid input",
				Detail:  "field required",
			},
			expected: "VALIDATION_ERROR: invalid input (field required)",
		},
		{
			name: "without detail",
			err: &AppError{
				Type:    ServerError,
				Message: "something broke",
			},
			expected: "SERVER_ERROR: something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, 429, New(RateLimitError, "slow down", "").GetHTTPStatus())
	assert.Equal(t, 502, New(PaymentError, "card declined", "").GetHTTPStatus())
	assert.Equal(t, 500, (&AppError{Type: ServerError}).GetHTTPStatus())
}
