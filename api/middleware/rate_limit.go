package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. Buckets idle longer than
// ttl are dropped on the next insert.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	lastSeen map[string]time.Time
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

func NewRateLimiter(limit rate.Limit, burst int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		limit:    limit,
		burst:    burst,
		ttl:      ttl,
	}
}

func (l *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.buckets[ip] = bucket
		l.evictIdle()
	}
	l.lastSeen[ip] = time.Now()
	return bucket.Allow()
}

func (l *RateLimiter) evictIdle() {
	if l.ttl == 0 {
		return
	}
	cutoff := time.Now().Add(-l.ttl)
	for ip, last := range l.lastSeen {
		if last.Before(cutoff) {
			delete(l.lastSeen, ip)
			delete(l.buckets, ip)
		}
	}
}
