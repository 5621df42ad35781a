package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"fintrack-api/internal/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiterStore struct {
	visitors map[string]*visitor
	mu       sync.RWMutex
	rps      rate.Limit
	burst    int
}

func newRateLimiterStore(rps float64, burst int) *rateLimiterStore {
	store := &rateLimiterStore{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go store.cleanupVisitors()
	return store
}

func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.RLock()
	v, exists := s.visitors[ip]
	s.mu.RUnlock()

	if exists {
		s.mu.Lock()
		v.lastSeen = time.Now()
		s.mu.Unlock()
		return v.limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock
	if v, exists := s.visitors[ip]; exists {
		v.lastSeen = time.Now()
		return v.limiter
	}

	limiter := rate.NewLimiter(s.rps, s.burst)
	s.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

// cleanupVisitors periodically removes entries that have not been seen
// recently so the map does not grow without bound
func (s *rateLimiterStore) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		s.mu.Lock()
		for ip, v := range s.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(s.visitors, ip)
			}
		}
		s.mu.Unlock()
	}
}

// RateLimiter creates a per-IP rate limiting middleware with default settings
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithConfig(5, 10)
}

// RateLimiterWithConfig creates a per-IP rate limiting middleware with the
// given requests-per-second and burst size
func RateLimiterWithConfig(rps float64, burst int) echo.MiddlewareFunc {
	store := newRateLimiterStore(rps, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := getIP(c.Request())
			limiter := store.getLimiter(ip)

			if !limiter.Allow() {
				traceID := GetTraceID(c)
				errorResponse := errors.NewErrorResponse(
					errors.SystemRateLimitExceeded,
					traceID,
				)
				return c.JSON(http.StatusTooManyRequests, errorResponse)
			}

			return next(c)
		}
	}
}

// getIP extracts the client IP, honoring common proxy headers
func getIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
