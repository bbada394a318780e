package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KOFI-GYIMAH/portfolio/internal/metrics"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	var seen *responseRecorder
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.(*responseRecorder)
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	require.NotNil(t, seen)
	assert.Equal(t, http.StatusTeapot, seen.statusCode)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	r.HandleFunc("/contacts/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/contacts/42", nil))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `route="/contacts/{id:[0-9]+}"`)
	assert.NotContains(t, body, `route="/contacts/42"`)
}

func TestTracingMiddleware(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	r := mux.NewRouter()
	r.Use(TracingMiddleware)
	r.HandleFunc("/github/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/github/repos", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "http.server /github/repos", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/contact", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "HTTP_PANIC", body.ErrorRef)
}

func TestRequireBearer(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		token          string
		allowOpen      bool
		header         string
		expectedStatus int
		expectedKind   string
	}{
		{name: "closed when no token configured", token: "", header: "", expectedStatus: http.StatusServiceUnavailable, expectedKind: "config"},
		{name: "closed for any bearer when no token configured", token: "  ", header: "Bearer ", expectedStatus: http.StatusServiceUnavailable, expectedKind: "config"},
		{name: "open only with explicit opt-in", token: "", allowOpen: true, header: "", expectedStatus: http.StatusOK},
		{name: "opt-in ignored once a token is set", token: "s3cret", allowOpen: true, header: "", expectedStatus: http.StatusUnauthorized, expectedKind: "auth"},
		{name: "missing header", token: "s3cret", header: "", expectedStatus: http.StatusUnauthorized, expectedKind: "auth"},
		{name: "wrong scheme", token: "s3cret", header: "Basic s3cret", expectedStatus: http.StatusUnauthorized, expectedKind: "auth"},
		{name: "wrong token", token: "s3cret", header: "Bearer nope", expectedStatus: http.StatusUnauthorized, expectedKind: "auth"},
		{name: "valid token", token: "s3cret", header: "Bearer s3cret", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/contacts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireBearer(tt.token, tt.allowOpen)(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedKind != "" {
				assert.Contains(t, rec.Body.String(), `"kind":"`+tt.expectedKind+`"`)
			}
		})
	}
}
