// Package server is the account REST API: registration, login, profile
// updates and admin bans over a user repository.
package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// Config holds the settings the handlers need.
type Config struct {
	AdminEmail  string
	JWTSecret   []byte
	CORSOrigins []string
	// LoginLimit is the number of login attempts per client IP per minute.
	LoginLimit int
}

// Server wires handlers to a repository and mailer.
type Server struct {
	repo    domain.UserRepository
	mailer  domain.Mailer
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
	limiter *IPRateLimiter
}

// New creates the API server.
func New(repo domain.UserRepository, mailer domain.Mailer, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.LoginLimit <= 0 {
		cfg.LoginLimit = 60
	}
	cfg.AdminEmail = domain.NormalizeEmail(cfg.AdminEmail)
	return &Server{
		repo:    repo,
		mailer:  mailer,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		limiter: NewIPRateLimiter(cfg.LoginLimit, time.Minute),
	}
}

// Router builds the gin engine with every route and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	// ClientIP must be the socket peer so X-Forwarded-For cannot dodge the
	// login limiter.
	if err := r.SetTrustedProxies(nil); err != nil {
		s.logger.Warn("disabling trusted proxies", "err", err)
	}
	r.Use(gin.Recovery(), withLogging(s.logger), cors.New(s.corsConfig()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": s.now().Unix()})
	})

	r.POST("/login", s.limiter.Middleware(), s.login)

	users := r.Group("/users")
	users.POST("", s.register)
	users.GET("", s.listUsers)
	users.GET("/:id", s.getUser)
	users.PUT("/:id", s.requireSelf(), s.updateUser)
	users.PATCH("/:id/ban", s.requireAdmin(), s.banUser)
	users.PATCH("/:id/unban", s.requireAdmin(), s.unbanUser)
	users.DELETE("/:id", s.requireAdmin(), s.deleteUser)

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Admin-Email", "X-Admin-Role"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.cfg.CORSOrigins) == 0 || (len(s.cfg.CORSOrigins) == 1 && s.cfg.CORSOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.cfg.CORSOrigins
	}
	return cfg
}

func (s *Server) isAdminEmail(email string) bool {
	return s.cfg.AdminEmail != "" && domain.NormalizeEmail(email) == s.cfg.AdminEmail
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
