// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter paces outbound listing fetches.
type Limiter interface {
	// Wait blocks until a fetch of rawURL may start or ctx is done.
	Wait(ctx context.Context, rawURL string) error
	// Allow reports whether a fetch of rawURL may start right now.
	Allow(rawURL string) bool
}

// HostLimiter keeps one token bucket per host so that repeated listing
// fetches against the directory never exceed the configured pace.
type HostLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	every   rate.Limit
	burst   int
}

// NewHostLimiter returns a limiter allowing rps fetches per second per host.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &HostLimiter{
		buckets: make(map[string]*rate.Limiter),
		every:   rate.Limit(rps),
		burst:   burst,
	}
}

// Wait blocks until the bucket for rawURL's host has a token.
// Unparseable URLs are let through; the fetch itself reports them.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	host := hostOf(rawURL)
	if host == "" {
		return nil
	}
	return l.bucket(host).Wait(ctx)
}

// Allow consumes a token for rawURL's host if one is available.
func (l *HostLimiter) Allow(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return true
	}
	return l.bucket(host).Allow()
}

func (l *HostLimiter) bucket(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[host]
	if !ok {
		b = rate.NewLimiter(l.every, l.burst)
		l.buckets[host] = b
	}
	return b
}

// hostOf lowercases the host so www.FutureTools.io and www.futuretools.io share a bucket.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
