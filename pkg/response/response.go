package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"church-cms/pkg/apperror"
	"church-cms/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request correlation id.
const HeaderRequestID = "X-Request-ID"

// CtxRequestID is the gin context key holding the request id.
const CtxRequestID = "request_id"

var developmentMode atomic.Bool

// SetDevelopmentMode toggles exposure of internal error detail on 500s.
func SetDevelopmentMode(on bool) {
	developmentMode.Store(on)
}

// ErrorResponse is the error envelope: {error, message?, errors?, retryAfter?}.
type ErrorResponse struct {
	Error      string                `json:"error"`
	Message    string                `json:"message,omitempty"`
	Code       string                `json:"code"`
	Errors     []apperror.FieldError `json:"errors,omitempty"`
	RetryAfter int                   `json:"retryAfter,omitempty"`
	RequestID  string                `json:"requestId,omitempty"`
}

// MessageResponse is returned by operations with nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	c.Header(HeaderRequestID, getRequestID(c))
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.Header(HeaderRequestID, getRequestID(c))
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 {message} response.
func Message(c *gin.Context, msg string) {
	OK(c, MessageResponse{Message: msg})
}

// Paginated sends the list envelope {data, pagination}.
func Paginated[T any](c *gin.Context, items []T, meta pagination.Meta) {
	if items == nil {
		items = []T{}
	}
	OK(c, pagination.Page[T]{Data: items, Pagination: meta})
}

// Error classifies err and sends the matching error envelope.
func Error(c *gin.Context, err error) {
	appErr := Classify(err)

	body := ErrorResponse{
		Error:      appErr.Message,
		Message:    appErr.Detail,
		Code:       appErr.Code,
		Errors:     appErr.Fields,
		RetryAfter: appErr.RetryAfter,
		RequestID:  getRequestID(c),
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError && developmentMode.Load() && err != nil && body.Message == "" {
		body.Message = err.Error()
	}
	if appErr.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(appErr.RetryAfter))
	}
	c.Header(HeaderRequestID, body.RequestID)
	c.JSON(appErr.HTTPStatus, body)
}

// Classify maps an error to the AppError that decides the HTTP response.
// A 500 wrapper never hides a more specific cause beneath it.
func Classify(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus == http.StatusInternalServerError && appErr.Err != nil {
			if inner := classifyShape(appErr.Err); inner != nil {
				return inner
			}
		}
		return appErr
	}
	if shaped := classifyShape(err); shaped != nil {
		return shaped
	}
	return apperror.Wrap("SYS_000", "Internal server error", http.StatusInternalServerError, err)
}

func classifyShape(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus != http.StatusInternalServerError {
		return appErr
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.ValidationFields(FieldErrors(verrs))
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperror.ErrPayloadTooLarge()
	}

	var synErr *json.SyntaxError
	if errors.As(err, &synErr) {
		return apperror.Validation("Malformed JSON body")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperror.ValidationFields([]apperror.FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("must be of type %s", typeErr.Type.String()),
		}})
	}

	if errors.Is(err, io.EOF) {
		return apperror.Validation("Request body is required")
	}
	return nil
}

// FieldErrors converts validator errors into client-facing field messages.
func FieldErrors(verrs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperror.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "url", "safe_url":
		return "must be a valid http(s) URL"
	case "hhmm":
		return "must be in HH:MM format"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "dive":
		return "contains an invalid entry"
	default:
		return "is invalid"
	}
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get(CtxRequestID); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	id := uuid.New().String()
	c.Set(CtxRequestID, id)
	return id
}
