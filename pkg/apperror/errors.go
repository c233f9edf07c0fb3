package apperror

import (
	"fmt"
	"net/http"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	Detail     string       `json:"message,omitempty"`
	HTTPStatus int          `json:"-"`
	Fields     []FieldError `json:"errors,omitempty"`
	RetryAfter int          `json:"retryAfter,omitempty"` // seconds
	Err        error        `json:"-"`                    // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail returns a copy carrying a client-facing detail message.
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a 400 with a single human-readable reason.
func Validation(detail string) *AppError {
	return &AppError{
		Code:       "VAL_001",
		Message:    "Validation failed",
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationFields returns a 400 carrying field-level messages.
func ValidationFields(fields []FieldError) *AppError {
	return &AppError{
		Code:       "VAL_001",
		Message:    "Validation failed",
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

func ErrInvalidID() *AppError {
	return New("VAL_002", "Invalid ID format", http.StatusBadRequest)
}

func ErrDuplicate(err error) *AppError {
	return Wrap("VAL_003", "Duplicate entry", http.StatusBadRequest, err)
}

func ErrPayloadTooLarge() *AppError {
	return New("VAL_004", "Request body too large", http.StatusRequestEntityTooLarge)
}

// ---- Authentication & Authorization (AUTH) ----

func ErrMissingToken() *AppError {
	return New("AUTH_001", "No authorization token provided", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid token", http.StatusUnauthorized)
}

func ErrAdminRequired() *AppError {
	return &AppError{
		Code:       "AUTH_003",
		Message:    "Admin access required",
		Detail:     "Your account does not have the admin role",
		HTTPStatus: http.StatusForbidden,
	}
}

func ErrInvalidSignature() *AppError {
	return New("AUTH_004", "Invalid signature", http.StatusUnauthorized)
}

// ---- Resources (RES) ----

func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Payments (PAY) ----

func ErrGatewayNotConfigured() *AppError {
	return New("PAY_001", "Payment gateway is not configured", http.StatusInternalServerError)
}

func ErrPaymentInitFailed(detail string) *AppError {
	return &AppError{
		Code:       "PAY_002",
		Message:    "Failed to initialize payment",
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
	}
}

func ErrInvalidAmount() *AppError {
	return New("PAY_003", "Invalid amount", http.StatusBadRequest)
}

// ---- Uploads (UPL) ----

func ErrNoFile() *AppError {
	return New("UPL_001", "No file uploaded", http.StatusBadRequest)
}

func ErrFileType(name string) *AppError {
	return &AppError{
		Code:       "UPL_002",
		Message:    "File type not allowed",
		Detail:     fmt.Sprintf("%s: only images, audio, and video files are allowed", name),
		HTTPStatus: http.StatusBadRequest,
	}
}

func ErrFileTooLarge() *AppError {
	return New("UPL_003", "File too large", http.StatusRequestEntityTooLarge)
}

func ErrStorageNotConfigured() *AppError {
	return New("UPL_004", "Storage service is not configured", http.StatusInternalServerError)
}

func ErrUnknownBucket(bucket string) *AppError {
	return &AppError{
		Code:       "UPL_005",
		Message:    "Unknown bucket",
		Detail:     bucket,
		HTTPStatus: http.StatusBadRequest,
	}
}

func ErrTooManyFiles(max int) *AppError {
	return &AppError{
		Code:       "UPL_006",
		Message:    "Too many files",
		Detail:     fmt.Sprintf("at most %d files per request", max),
		HTTPStatus: http.StatusBadRequest,
	}
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return &AppError{
		Code:       "RATE_001",
		Message:    "Too many requests",
		Detail:     "Too many requests from this IP, please try again later.",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// ErrDatabaseNotReady signals degraded mode; clients should retry later.
func ErrDatabaseNotReady() *AppError {
	return &AppError{
		Code:       "SYS_002",
		Message:    "Service temporarily unavailable",
		Detail:     "Database connection is not ready. Please try again in a moment.",
		HTTPStatus: http.StatusServiceUnavailable,
		RetryAfter: 5,
	}
}

func ErrMailNotConfigured() *AppError {
	return New("SYS_003", "Email service is not configured", http.StatusInternalServerError)
}

// ErrUpstream wraps a failed call to a third-party service.
func ErrUpstream(message string, err error) *AppError {
	return Wrap("SYS_004", message, http.StatusInternalServerError, err)
}
