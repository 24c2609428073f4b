package githubclient

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// API endpoint families with independent rate limit budgets.
const (
	EndpointCore    = "core"
	EndpointSearch  = "search"
	EndpointGraphQL = "graphql"
)

// LimitStatus is the tracked budget for one endpoint family.
type LimitStatus struct {
	Endpoint  string `json:"endpoint"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Reset     int64  `json:"reset"`
}

// RateLimitTracker records the latest X-RateLimit headers per endpoint family
// so callers can avoid requests that would be rejected. Safe for concurrent
// use.
type RateLimitTracker struct {
	mu            sync.Mutex
	limits        map[string]LimitStatus
	authenticated bool
}

// NewRateLimitTracker seeds the tracker with unauthenticated defaults.
func NewRateLimitTracker() *RateLimitTracker {
	return &RateLimitTracker{
		limits: map[string]LimitStatus{
			EndpointCore:    {Endpoint: EndpointCore, Limit: 60, Remaining: 60},
			EndpointSearch:  {Endpoint: EndpointSearch, Limit: 10, Remaining: 10},
			EndpointGraphQL: {Endpoint: EndpointGraphQL},
		},
	}
}

// UpdateFromHeaders absorbs the rate limit headers of a response. Missing or
// malformed headers leave the previous values in place.
func (t *RateLimitTracker) UpdateFromHeaders(h http.Header, endpoint string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	status := t.limits[t.key(endpoint)]
	if v, err := strconv.Atoi(h.Get("X-RateLimit-Limit")); err == nil {
		status.Limit = v
	}
	if v, err := strconv.Atoi(h.Get("X-RateLimit-Remaining")); err == nil {
		status.Remaining = v
	}
	if v, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		status.Reset = v
	}
	t.limits[t.key(endpoint)] = status

	// Authenticated tokens get a 5000/hour core budget.
	if t.key(endpoint) == EndpointCore && status.Limit >= 5000 {
		t.authenticated = true
	}
}

// Status returns a copy of the tracked budget for an endpoint family.
func (t *RateLimitTracker) Status(endpoint string) LimitStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.limits[t.key(endpoint)]
}

// AllStatuses returns a snapshot of every tracked endpoint family.
func (t *RateLimitTracker) AllStatuses() map[string]LimitStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]LimitStatus, len(t.limits))
	for k, v := range t.limits {
		out[k] = v
	}
	return out
}

// Authenticated reports whether an authenticated budget has been observed.
func (t *RateLimitTracker) Authenticated() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.authenticated
}

// IsLimited reports whether the budget for an endpoint family is exhausted.
func (t *RateLimitTracker) IsLimited(endpoint string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.limits[t.key(endpoint)].Remaining <= 0
}

// WaitTime returns how long to wait before the next request at the given
// time. Zero means the request can go out now. With an exhausted budget and
// no known reset, it falls back to a full hour.
func (t *RateLimitTracker) WaitTime(endpoint string, now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	status := t.limits[t.key(endpoint)]
	if status.Remaining > 0 {
		return 0
	}
	if status.Reset > 0 {
		wait := time.Unix(status.Reset, 0).Sub(now)
		if wait < 0 {
			return 0
		}
		return wait
	}
	return time.Hour
}

func (t *RateLimitTracker) key(endpoint string) string {
	if _, ok := t.limits[endpoint]; !ok {
		return EndpointCore
	}
	return endpoint
}

// backoffDelay computes the exponential retry delay for a 0-indexed attempt,
// capped at five minutes.
func backoffDelay(attempt int) time.Duration {
	delay := time.Second << uint(attempt)
	if max := 5 * time.Minute; delay > max || delay <= 0 {
		return max
	}
	return delay
}
