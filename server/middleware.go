package server

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CrestNiraj12/rivalsnexus/infra/auth"
)

const (
	headerAdminEmail = "X-Admin-Email"
	headerAdminRole  = "X-Admin-Role"
	ctxUserID        = "userId"
)

func withLogging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// requireAdmin checks the acting admin's email and role headers against
// the configured admin email.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader(headerAdminEmail)
		role := strings.ToLower(strings.TrimSpace(c.GetHeader(headerAdminRole)))
		if !s.isAdminEmail(email) || role != "admin" {
			abortError(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

// requireSelf only lets a session token act on its own account.
func (s *Server) requireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		claims, err := auth.ParseToken(s.cfg.JWTSecret, token)
		if err != nil {
			s.logger.Warn("rejected session token", "err", err)
			abortError(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		if claims.UserID != c.Param("id") {
			abortError(c, http.StatusForbidden, "You can only update your own profile")
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Next()
	}
}

// IPRateLimiter is a sliding-window request limiter keyed by client IP.
// IPs with no request inside the window are dropped at most once per window.
type IPRateLimiter struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewIPRateLimiter allows limit requests per window for each IP.
func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Allow records a request from ip and reports whether it is within the limit.
func (rl *IPRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)
	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(cutoff)
		rl.lastSweep = now
	}

	requests := rl.requests[ip]
	i := 0
	for ; i < len(requests); i++ {
		if requests[i].After(cutoff) {
			break
		}
	}
	requests = requests[i:]

	if len(requests) >= rl.limit {
		rl.requests[ip] = requests
		return false
	}
	rl.requests[ip] = append(requests, now)
	return true
}

func (rl *IPRateLimiter) sweep(cutoff time.Time) {
	for ip, times := range rl.requests {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.requests, ip)
		}
	}
}

// Middleware rejects requests over the limit with 429.
func (rl *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			abortError(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
