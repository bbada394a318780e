package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/metrics"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	gh "github.com/google/go-github/v75/github"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

const (
	defaultBaseURL   = "https://api.github.com/"
	defaultUserAgent = "Portfolio-App"
	defaultTimeout   = 10 * time.Second
)

var tracer = otel.Tracer("github.com/KOFI-GYIMAH/portfolio/internal/github")

type Options struct {
	Token     string
	BaseURL   string
	UserAgent string
	// * Timeout bounds each individual upstream call
	Timeout time.Duration
}

// * Client talks to the GitHub REST and GraphQL APIs on behalf of one credential
type Client struct {
	gh      *gh.Client
	token   string
	timeout time.Duration
	limiter *RateLimiter
	now     func() time.Time
}

func NewClient(opts Options) (*Client, error) {
	rl := NewRateLimiter()
	token := strings.TrimSpace(opts.Token)

	var transport http.RoundTripper = rl.Middleware(http.DefaultTransport)
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	client := gh.NewClient(&http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	})

	client.UserAgent = opts.UserAgent
	if client.UserAgent == "" {
		client.UserAgent = defaultUserAgent
	}

	baseURL, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, errors.New(
			"GITHUB_CONFIG_ERROR",
			"Invalid GitHub API URL",
			fmt.Sprintf("Could not use '%s' as the GitHub API base URL", opts.BaseURL),
			err,
			errors.LevelFatal,
		).WithKind(errors.KindConfig)
	}
	client.BaseURL = baseURL

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		gh:      client,
		token:   token,
		timeout: timeout,
		limiter: rl,
		now:     time.Now,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		raw = defaultBaseURL
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("missing scheme or host")
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// * Configured reports whether a non-blank credential was supplied
func (c *Client) Configured() bool {
	return c.token != ""
}

func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) startSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "github."+operation, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// * upstreamStatus extracts the HTTP status and message GitHub answered with.
// * A zero status means the request never got a response.
func upstreamStatus(err error) (int, string) {
	var (
		errResp   *gh.ErrorResponse
		rateErr   *gh.RateLimitError
		abuseErr  *gh.AbuseRateLimitError
		status    int
		message   string
		responded bool
	)

	switch {
	case errors.As(err, &errResp) && errResp.Response != nil:
		status, message, responded = errResp.Response.StatusCode, errResp.Message, true
	case errors.As(err, &rateErr) && rateErr.Response != nil:
		status, message, responded = rateErr.Response.StatusCode, rateErr.Message, true
	case errors.As(err, &abuseErr) && abuseErr.Response != nil:
		status, message, responded = abuseErr.Response.StatusCode, abuseErr.Message, true
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, err.Error()
	}

	if !responded {
		return 0, err.Error()
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return status, message
}

// * transportStatus is used when no upstream status is available
func transportStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// * upstreamFailure forwards the upstream status, or maps transport errors to 5xx
func upstreamFailure(ref, title string, err error) *errors.ApplicationError {
	status, message := upstreamStatus(err)
	if status == 0 {
		status = transportStatus(err)
	}
	return errors.New(ref, title, message, err, errors.LevelError).
		WithKind(errors.KindUpstream).
		WithStatus(status)
}

func observe(operation string, err error) {
	metrics.ObserveUpstream(operation, err)
}
