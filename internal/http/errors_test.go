package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productapi/internal/domain"
	"productapi/internal/logger"
	"productapi/internal/metrics"
)

func newTestMapper(buf *bytes.Buffer, m *metrics.Metrics) *ErrorMapper {
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewErrorMapper(log, m, func() time.Time { return fixedNow })
}

func TestErrorMapper_Classification(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		level   string
	}{
		{
			name:    "not found",
			err:     domain.NewNotFoundError("Product", 999),
			status:  http.StatusNotFound,
			code:    "RESOURCE_NOT_FOUND",
			message: "Product with identifier 999 was not found",
			level:   "WARN",
		},
		{
			name:    "domain validation",
			err:     domain.NewValidationError("product price must be zero or positive"),
			status:  http.StatusBadRequest,
			code:    "VALIDATION_ERROR",
			message: "product price must be zero or positive",
			level:   "WARN",
		},
		{
			name:    "validation with specific code",
			err:     domain.NewValidationErrorWithCode("sku taken", "DUPLICATE_SKU"),
			status:  http.StatusBadRequest,
			code:    "DUPLICATE_SKU",
			message: "sku taken",
			level:   "WARN",
		},
		{
			name:    "request validation",
			err:     &RequestValidationError{Fields: map[string]string{"price": "is required", "name": "is required"}},
			status:  http.StatusBadRequest,
			code:    "VALIDATION_ERROR",
			message: "Validation failed: name=is required, price=is required",
			level:   "WARN",
		},
		{
			name:    "unauthorized",
			err:     ErrUnauthorized,
			status:  http.StatusUnauthorized,
			code:    "UNAUTHORIZED",
			message: "Authentication required",
			level:   "WARN",
		},
		{
			name:    "access denied",
			err:     ErrAccessDenied,
			status:  http.StatusForbidden,
			code:    "ACCESS_DENIED",
			message: "Access denied",
			level:   "ERROR",
		},
		{
			name:    "business error",
			err:     domain.NewBusinessError(domain.CodePersistence, "failed to save product", errors.New("disk full")),
			status:  http.StatusInternalServerError,
			code:    "PERSISTENCE_ERROR",
			message: "failed to save product",
			level:   "ERROR",
		},
		{
			name:    "unexpected",
			err:     errors.New("nil pointer somewhere"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_ERROR",
			message: "An unexpected error occurred",
			level:   "ERROR",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			resp := newTestMapper(&buf, nil).Map(context.Background(), tc.err, "/api/products/999")

			assert.Equal(t, ErrorResponse{
				Code:      tc.code,
				Message:   tc.message,
				Status:    tc.status,
				Path:      "/api/products/999",
				Timestamp: "2025-10-22T12:30:00",
			}, resp)
			assert.Contains(t, buf.String(), "level="+tc.level)
		})
	}
}

func TestErrorMapper_WrappedErrorsKeepTheirClass(t *testing.T) {
	var buf bytes.Buffer
	m := newTestMapper(&buf, nil)

	resp := m.Map(context.Background(), fmt.Errorf("get: %w", domain.NewNotFoundError("Product", 7)), "/p")
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "Product with identifier 7 was not found", resp.Message)

	resp = m.Map(context.Background(), fmt.Errorf("auth: %w", ErrAccessDenied), "/p")
	assert.Equal(t, http.StatusForbidden, resp.Status)
}

func TestErrorMapper_Deterministic(t *testing.T) {
	var buf bytes.Buffer
	m := newTestMapper(&buf, nil)
	err := domain.NewValidationError("product name is required")

	first := m.Map(context.Background(), err, "/api/products")
	second := m.Map(context.Background(), err, "/api/products")
	assert.Equal(t, first, second)
}

func TestErrorMapper_InternalDetailsStayInLogs(t *testing.T) {
	var buf bytes.Buffer
	m := newTestMapper(&buf, nil)

	resp := m.Map(context.Background(), errors.New("dial tcp 10.0.0.5:5432: connection refused"), "/api/products")
	assert.NotContains(t, resp.Message, "10.0.0.5")
	assert.Contains(t, buf.String(), "10.0.0.5")
}

func TestErrorMapper_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	m := newTestMapper(&buf, nil)
	ctx := logger.ContextWithRequestID(context.Background(), "req-42")

	m.Map(ctx, domain.NewNotFoundError("Product", 1), "/api/products/1")
	out := buf.String()
	assert.Contains(t, out, "request_id=req-42")
	assert.Contains(t, out, "code=RESOURCE_NOT_FOUND")
	assert.Contains(t, out, "status=404")
}

func TestErrorMapper_CountsByCode(t *testing.T) {
	var buf bytes.Buffer
	mt := metrics.New()
	m := newTestMapper(&buf, mt)

	m.Map(context.Background(), domain.NewNotFoundError("Product", 1), "/a")
	m.Map(context.Background(), domain.NewNotFoundError("Product", 2), "/b")
	m.Map(context.Background(), ErrUnauthorized, "/c")

	require.Equal(t, 2.0, testutil.ToFloat64(mt.DomainErrorsTotal.WithLabelValues("RESOURCE_NOT_FOUND")))
	require.Equal(t, 1.0, testutil.ToFloat64(mt.DomainErrorsTotal.WithLabelValues("UNAUTHORIZED")))
}

func TestRequestValidationError_SortedFields(t *testing.T) {
	err := &RequestValidationError{Fields: map[string]string{
		"quantity": "is required",
		"name":     "must be at least 3 characters",
		"price":    "must be greater than or equal to 0",
	}}
	want := "Validation failed: name=must be at least 3 characters, price=must be greater than or equal to 0, quantity=is required"
	assert.Equal(t, want, err.Error())
}

func TestPanicError(t *testing.T) {
	cause := errors.New("boom")
	assert.ErrorIs(t, panicError(cause), cause)
	assert.True(t, strings.HasPrefix(panicError("bad").Error(), "panic: bad"))
}
