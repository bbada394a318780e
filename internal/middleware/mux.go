package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/metrics"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/KOFI-GYIMAH/portfolio/internal/middleware"

type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newRecorder(w http.ResponseWriter) *responseRecorder {
	if rr, ok := w.(*responseRecorder); ok {
		return rr
	}
	return &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rr *responseRecorder) WriteHeader(code int) {
	if !rr.wroteHeader {
		rr.statusCode = code
		rr.wroteHeader = true
	}
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	rr.wroteHeader = true
	return rr.ResponseWriter.Write(b)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rr := newRecorder(w)

		next.ServeHTTP(rr, r)

		duration := time.Since(start)

		logger.Info("%s %s %d %s", r.Method, r.RequestURI, rr.statusCode, duration)
	})
}

// * MetricsMiddleware labels requests by route template so ids never become label values
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rr := newRecorder(w)

		next.ServeHTTP(rr, r)

		metrics.ObserveRequest(r.Method, routeTemplate(r), rr.statusCode, time.Since(start))
	})
}

func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeTemplate(r)
		ctx, span := otel.Tracer(tracerName).Start(
			r.Context(),
			"http.server "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		rr := newRecorder(w)
		next.ServeHTTP(rr, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", rr.statusCode))
		if rr.statusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rr.statusCode))
			return
		}
		span.SetStatus(codes.Ok, "request completed")
	})
}

// * RecoveryMiddleware turns a handler panic into a 500 JSON error
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rr := newRecorder(w)
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}
			err := errors.New(
				"HTTP_PANIC",
				"An unexpected error occurred",
				fmt.Sprintf("%s %s", r.Method, r.URL.Path),
				fmt.Errorf("%v", p),
				errors.LevelFatal,
			)
			if rr.wroteHeader {
				logger.Error("%v", err)
				return
			}
			errors.WriteHTTPError(rr, err)
		}()

		next.ServeHTTP(rr, r)
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
