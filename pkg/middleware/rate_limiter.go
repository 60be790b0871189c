package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/jordanlanch/alug/pkg/models"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// MsgRateLimited is the banner shown when a client sends too many requests
const MsgRateLimited = "Zu viele Anfragen. Bitte versuche es später erneut."

const cleanupInterval = 3 * time.Minute

// RateLimiter holds one token bucket per client IP
type RateLimiter struct {
	visitors map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit // requests per second
	b        int        // burst

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a rate limiter allowing requestsPerMinute with burst.
// Call Stop to end the cleanup goroutine.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*rate.Limiter),
		r:        rate.Limit(float64(requestsPerMinute) / 60.0),
		b:        burst,
		stop:     make(chan struct{}),
	}

	go rl.cleanupVisitors()

	return rl
}

// GetLimiter returns the limiter for the given IP
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.visitors[ip]
	if !exists {
		limiter = rate.NewLimiter(rl.r, rl.b)
		rl.visitors[ip] = limiter
	}

	return limiter
}

// Stop ends the background cleanup
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.prune()
		}
	}
}

// prune drops visitors whose bucket has refilled completely
func (rl *RateLimiter) prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, limiter := range rl.visitors {
		if limiter.Tokens() >= float64(rl.b) {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) visitorCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// RateLimitMiddleware rejects requests over the limit with a banner
func (rl *RateLimiter) RateLimitMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = c.Request().RemoteAddr
			}

			if !rl.GetLimiter(ip).Allow() {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:          "rate_limit_exceeded",
					Message:        MsgRateLimited,
					DismissAfterMS: models.ErrorBannerMillis,
				})
			}

			return next(c)
		}
	}
}

// PerEndpointRateLimiter keeps a separate RateLimiter per route, so the admin
// password and login endpoints can be held to stricter limits.
type PerEndpointRateLimiter struct {
	limiters          map[string]*RateLimiter
	mu                sync.RWMutex
	requestsPerMinute int
	burst             int
}

// NewPerEndpointRateLimiter creates a limiter whose unlisted routes use the
// given defaults
func NewPerEndpointRateLimiter(requestsPerMinute, burst int) *PerEndpointRateLimiter {
	return &PerEndpointRateLimiter{
		limiters:          make(map[string]*RateLimiter),
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
	}
}

// SetEndpointLimit sets the limit for endpoint, written as "METHOD /route/:pattern"
func (perl *PerEndpointRateLimiter) SetEndpointLimit(endpoint string, requestsPerMinute, burst int) {
	perl.mu.Lock()
	defer perl.mu.Unlock()

	if old, ok := perl.limiters[endpoint]; ok {
		old.Stop()
	}
	perl.limiters[endpoint] = NewRateLimiter(requestsPerMinute, burst)
}

func (perl *PerEndpointRateLimiter) limiterFor(endpoint string) *RateLimiter {
	perl.mu.RLock()
	limiter, exists := perl.limiters[endpoint]
	perl.mu.RUnlock()
	if exists {
		return limiter
	}

	perl.mu.Lock()
	defer perl.mu.Unlock()
	if limiter, exists = perl.limiters[endpoint]; !exists {
		limiter = NewRateLimiter(perl.requestsPerMinute, perl.burst)
		perl.limiters[endpoint] = limiter
	}
	return limiter
}

// RateLimitMiddleware applies the route's limiter
func (perl *PerEndpointRateLimiter) RateLimitMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			endpoint := c.Request().Method + " " + c.Path()
			return perl.limiterFor(endpoint).RateLimitMiddleware()(next)(c)
		}
	}
}

// Stop ends the cleanup of every route limiter
func (perl *PerEndpointRateLimiter) Stop() {
	perl.mu.Lock()
	defer perl.mu.Unlock()
	for _, l := range perl.limiters {
		l.Stop()
	}
}
