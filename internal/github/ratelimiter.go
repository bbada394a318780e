package github

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/metrics"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

// * ErrRateLimited is returned by the transport while the upstream budget is exhausted
var ErrRateLimited = errors.New("github rate limit exhausted")

const (
	ResourceCore    = "core"
	ResourceGraphQL = "graphql"
	ResourceSearch  = "search"
)

type budget struct {
	remaining int
	reset     time.Time
}

// * RateLimiter tracks the X-RateLimit headers of every response, one budget per
// * X-RateLimit-Resource. It never sleeps: once a budget is spent, requests against
// * that resource fail until its reset time passes.
type RateLimiter struct {
	mu      sync.Mutex
	budgets map[string]*budget
	lowWarn int
	now     func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		budgets: make(map[string]*budget),
		lowWarn: 100,
		now:     time.Now,
	}
}

// * resourceFor guesses the bucket a request is charged to before GitHub says so
func resourceFor(req *http.Request) string {
	path := strings.TrimSuffix(req.URL.Path, "/")
	switch {
	case strings.HasSuffix(path, "/graphql") || path == "graphql":
		return ResourceGraphQL
	case strings.Contains(path, "/search/"):
		return ResourceSearch
	default:
		return ResourceCore
	}
}

func (r *RateLimiter) check(resource string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.budgets[resource]
	if ok && b.remaining <= 0 && r.now().Before(b.reset) {
		logger.Warn("[RateLimiter] %s rate limit exceeded. Refusing request until reset at %v", resource, b.reset)
		return fmt.Errorf("%w for %s until %s", ErrRateLimited, resource, b.reset.UTC().Format(time.RFC3339))
	}
	return nil
}

func (r *RateLimiter) updateFromHeaders(resource string, headers http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := headers.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return
	}

	if reported := strings.ToLower(strings.TrimSpace(headers.Get("X-RateLimit-Resource"))); reported != "" {
		resource = reported
	}

	b, ok := r.budgets[resource]
	if !ok {
		b = &budget{}
		r.budgets[resource] = b
	}

	val, err := strconv.Atoi(remaining)
	if err != nil {
		return
	}
	b.remaining = val
	metrics.SetRateLimitRemaining(resource, val)

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			b.reset = time.Unix(val, 0)
		}
	}

	if b.remaining < r.lowWarn {
		logger.Warn("[RateLimiter] Low %s rate limit: %d remaining. Resets at %s", resource, b.remaining, b.reset.Format(time.RFC1123))
	}
}

// * Remaining returns the budget the most recent response reported for resource.
// * A resource nothing has been charged to yet reports the default REST allowance.
func (r *RateLimiter) Remaining(resource string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.budgets[resource]; ok {
		return b.remaining
	}
	return 5000
}

func (r *RateLimiter) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resource := resourceFor(req)
		if err := r.check(resource); err != nil {
			return nil, err
		}

		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Error("Network error in RoundTrip: %v", err)
			return nil, err
		}

		r.updateFromHeaders(resource, resp.Header)
		return resp, nil
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
