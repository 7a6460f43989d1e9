package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const (
	defaultRateLimit  = 10
	defaultRateWindow = time.Minute
)

// rateLimiter is a per-IP sliding window counter. Entries for quiet IPs are
// pruned as they are touched.
type rateLimiter struct {
	sync.Mutex
	limit  int
	window time.Duration
	seen   map[string][]time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:  limit,
		window: window,
		seen:   make(map[string][]time.Time),
	}
}

func (l *rateLimiter) allow(ip string) bool {
	l.Lock()
	defer l.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	recent := l.seen[ip][:0]
	for _, t := range l.seen[ip] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.seen[ip] = recent
		return false
	}

	l.seen[ip] = append(recent, now)
	return true
}

// rateLimitMiddleware throttles the api routes per client IP. The 429 it
// returns is a request-level condition: callers wait and retry, the
// fallback classifier is never involved.
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	limit := viper.GetInt("server.ratelimit.requests")
	if limit == 0 {
		limit = defaultRateLimit
	}
	window := viper.GetDuration("server.ratelimit.window")
	if window == 0 {
		window = defaultRateWindow
	}

	limiter := newRateLimiter(limit, window)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			abortWithEncoding(c, http.StatusTooManyRequests, errorTooManyRequests)
			return
		}
		c.Next()
	}
}
