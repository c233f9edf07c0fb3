package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("RES_001", "Sermon not found", http.StatusNotFound),
			expected: "[RES_001] Sermon not found",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, New("RES_001", "x", http.StatusNotFound).Unwrap())
}

func TestAppError_WithDetail_Copies(t *testing.T) {
	base := ErrNotFound("Event")
	detailed := base.WithDetail("no event with that id")

	assert.Empty(t, base.Detail)
	assert.Equal(t, "no event with that id", detailed.Detail)
	assert.Equal(t, base.Code, detailed.Code)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Validation", Validation("bad"), "VAL_001", 400},
		{"ValidationFields", ValidationFields([]FieldError{{Field: "email", Message: "invalid"}}), "VAL_001", 400},
		{"InvalidID", ErrInvalidID(), "VAL_002", 400},
		{"Duplicate", ErrDuplicate(nil), "VAL_003", 400},
		{"PayloadTooLarge", ErrPayloadTooLarge(), "VAL_004", 413},
		{"MissingToken", ErrMissingToken(), "AUTH_001", 401},
		{"InvalidToken", ErrInvalidToken(), "AUTH_002", 401},
		{"AdminRequired", ErrAdminRequired(), "AUTH_003", 403},
		{"InvalidSignature", ErrInvalidSignature(), "AUTH_004", 401},
		{"NotFound", ErrNotFound("Donation"), "RES_001", 404},
		{"GatewayNotConfigured", ErrGatewayNotConfigured(), "PAY_001", 500},
		{"PaymentInitFailed", ErrPaymentInitFailed("declined"), "PAY_002", 400},
		{"NoFile", ErrNoFile(), "UPL_001", 400},
		{"FileType", ErrFileType("a.exe"), "UPL_002", 400},
		{"StorageNotConfigured", ErrStorageNotConfigured(), "UPL_004", 500},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", 429},
		{"Internal", InternalError(errors.New("x")), "SYS_001", 500},
		{"DatabaseNotReady", ErrDatabaseNotReady(), "SYS_002", 503},
		{"MailNotConfigured", ErrMailNotConfigured(), "SYS_003", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestDatabaseNotReady_RetryAfter(t *testing.T) {
	err := ErrDatabaseNotReady()
	assert.Equal(t, 5, err.RetryAfter)
	assert.NotEmpty(t, err.Detail)
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("Testimonial")
	assert.Equal(t, "Testimonial not found", err.Message)
}
