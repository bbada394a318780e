package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

type ErrorLevel int

const (
	LevelFatal ErrorLevel = iota + 1
	LevelError
	LevelWarning
	LevelInfo
)

func (l ErrorLevel) String() string {
	return [...]string{"", "Fatal", "Error", "Warning", "Info"}[l]
}

// * Kind classifies an error independently of its message text
type Kind string

const (
	KindInternal    Kind = "internal"
	KindConfig      Kind = "config"
	KindAuth        Kind = "auth"
	KindUpstream    Kind = "upstream"
	KindNotFound    Kind = "not_found"
	KindValidation  Kind = "validation"
	KindPersistence Kind = "persistence"
)

type ApplicationError struct {
	Reference   string
	Title       string
	Detail      string
	RootCause   error
	Level       ErrorLevel
	Kind        Kind
	Status      int
	OccurredAt  time.Time
	CallerTrace []string
}

func (e *ApplicationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s][%s] %s", e.OccurredAt.Format(time.RFC3339), e.Reference, e.Title)

	if e.Detail != "" {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}

	if e.RootCause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.RootCause)
	}

	return b.String()
}

func (e *ApplicationError) Unwrap() error {
	return e.RootCause
}

// * WithKind sets the classification and returns the same error for chaining
func (e *ApplicationError) WithKind(kind Kind) *ApplicationError {
	e.Kind = kind
	return e
}

// * WithStatus pins the HTTP status written for this error
func (e *ApplicationError) WithStatus(status int) *ApplicationError {
	e.Status = status
	return e
}

func New(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return &ApplicationError{
		Reference:   ref,
		Title:       title,
		Detail:      detail,
		RootCause:   cause,
		Level:       level,
		Kind:        KindInternal,
		OccurredAt:  time.Now().UTC(),
		CallerTrace: captureCallerInfo(3),
	}
}

func Wrap(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return New(ref, title, detail, cause, level)
}

// * KindOf returns the kind of the first ApplicationError in the chain, or KindInternal
func KindOf(err error) Kind {
	var appErr *ApplicationError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// * Is and As forward to the standard library so callers need a single errors import
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// * StatusOf resolves the HTTP status for err: explicit status first, then kind
func StatusOf(err error) int {
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	if appErr.Status != 0 {
		return appErr.Status
	}

	switch appErr.Kind {
	case KindAuth:
		return http.StatusUnauthorized
	case KindUpstream:
		return http.StatusBadGateway
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		// * config, persistence, internal and kind-less errors are server faults at any level
		return http.StatusInternalServerError
	}
}

func captureCallerInfo(skip int) []string {
	pc := make([]uintptr, 10)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	pc = pc[:n]
	frames := runtime.CallersFrames(pc)

	var trace []string
	for {
		frame, more := frames.Next()
		trace = append(trace, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}

	return trace
}

type HTTPErrorResponse struct {
	Status     int       `json:"status"`
	ErrorRef   string    `json:"error_reference,omitempty"`
	Kind       Kind      `json:"kind"`
	Error      string    `json:"error"`
	Details    string    `json:"details,omitempty"`
	Resolution string    `json:"resolution,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// * NewHTTPErrorResponse builds the JSON body WriteHTTPError would send for err
func NewHTTPErrorResponse(err error) HTTPErrorResponse {
	var appErr *ApplicationError

	resp := HTTPErrorResponse{
		Status:    StatusOf(err),
		Kind:      KindOf(err),
		Error:     "An unexpected error occurred",
		Timestamp: time.Now().UTC(),
	}

	if errors.As(err, &appErr) {
		resp.ErrorRef = appErr.Reference
		resp.Error = appErr.Title
		resp.Details = appErr.Detail

		switch {
		case appErr.Kind == KindConfig:
			resp.Resolution = "Set the missing configuration value and restart the service"
		case appErr.Level == LevelFatal:
			resp.Resolution = "Please contact support with the error reference"
		case appErr.Level == LevelWarning:
			resp.Resolution = "Please review your request and try again"
		}
	} else {
		resp.Details = err.Error()
	}

	return resp
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	resp := NewHTTPErrorResponse(err)

	logger.Error("%v", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
