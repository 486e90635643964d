package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"productapi/internal/domain"
	"productapi/internal/logger"
	"productapi/internal/metrics"
)

// TimestampLayout is the layout of ErrorResponse.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05"

// Codes produced at the transport boundary.
const (
	CodeAccessDenied = "ACCESS_DENIED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

const (
	msgAccessDenied = "Access denied"
	msgUnauthorized = "Authentication required"
	msgInternal     = "An unexpected error occurred"
)

var (
	// ErrAccessDenied is raised when an authenticated client may not perform
	// the request.
	ErrAccessDenied = errors.New("access denied")
	// ErrUnauthorized is raised when the request carries no valid API key.
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrorResponse is the JSON body of every error answer.
type ErrorResponse struct {
	Code      string `json:"code" example:"RESOURCE_NOT_FOUND"`
	Message   string `json:"message" example:"Product with identifier 999 was not found"`
	Status    int    `json:"status" example:"404"`
	Path      string `json:"path" example:"/api/products/999"`
	Timestamp string `json:"timestamp" example:"2025-10-22T12:30:00"`
}

// RequestValidationError lists request fields that failed the shape checks
// done before the service is called.
type RequestValidationError struct {
	Fields map[string]string
}

func (e *RequestValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+e.Fields[name])
	}
	return "Validation failed: " + strings.Join(parts, ", ")
}

func fieldError(field, reason string) *RequestValidationError {
	return &RequestValidationError{Fields: map[string]string{field: reason}}
}

// ErrorMapper turns errors into ErrorResponse values and logs them.
type ErrorMapper struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewErrorMapper(log *slog.Logger, m *metrics.Metrics, now func() time.Time) *ErrorMapper {
	if now == nil {
		now = time.Now
	}
	return &ErrorMapper{log: log, metrics: m, now: now}
}

// Map classifies err. Client-caused failures are logged at warn level,
// everything else at error level with the full cause.
func (m *ErrorMapper) Map(ctx context.Context, err error, path string) ErrorResponse {
	status, code, message, level, what := classify(err)
	logger.WithContext(ctx, m.log).Log(ctx, level, what,
		"code", code,
		"status", status,
		"path", path,
		"error", err,
	)
	m.metrics.ObserveError(code)
	return ErrorResponse{
		Code:      code,
		Message:   message,
		Status:    status,
		Path:      path,
		Timestamp: m.now().Format(TimestampLayout),
	}
}

func classify(err error) (status int, code, message string, level slog.Level, what string) {
	var (
		nf  *domain.NotFoundError
		ve  *domain.ValidationError
		be  *domain.BusinessError
		rve *RequestValidationError
	)
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Code, nf.Message, slog.LevelWarn, "resource not found"
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Code, ve.Message, slog.LevelWarn, "validation error"
	case errors.As(err, &rve):
		return http.StatusBadRequest, domain.CodeValidation, rve.Error(), slog.LevelWarn, "request validation error"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized, msgUnauthorized, slog.LevelWarn, "unauthorized"
	case errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden, CodeAccessDenied, msgAccessDenied, slog.LevelError, "access denied"
	case errors.As(err, &be):
		return http.StatusInternalServerError, be.Code, be.Message, slog.LevelError, "business error"
	default:
		return http.StatusInternalServerError, CodeInternal, msgInternal, slog.LevelError, "unexpected error"
	}
}

// panicError wraps a recovered panic value.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", v)
}
