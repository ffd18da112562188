package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/errors"
	"golang.org/x/time/rate"
)

// UserLimiter applies a token bucket per user.
type UserLimiter struct {
	rps   rate.Limit
	burst int
	now   func() time.Time

	mu      sync.Mutex
	buckets map[uuid.UUID]*rate.Limiter
}

// NewUserLimiter allows each user rps requests per second with bursts of burst.
func NewUserLimiter(rps float64, burst int) *UserLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &UserLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		buckets: make(map[uuid.UUID]*rate.Limiter),
	}
}

// Allow reports whether userID may make a request now.
func (l *UserLimiter) Allow(userID uuid.UUID) bool {
	l.mu.Lock()
	b, ok := l.buckets[userID]
	if !ok {
		b = rate.NewLimiter(l.rps, l.burst)
		l.buckets[userID] = b
	}
	l.mu.Unlock()
	return b.AllowN(l.now(), 1)
}

// Middleware rejects requests over the user's budget with RATE_LIMITED.
// It must run after userMiddleware.
func (l *UserLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(userFromContext(r.Context())) {
			handleError(w, r, errors.NewRateLimitedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}
