// Package devserver hosts an in-memory implementation of the TaleemTrack
// backend contract so the client can be developed and tested without the
// production API. State lives for the process lifetime only.
package devserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	"github.com/taleemtrack/taleemtrack-cli/pkg/config"
	"github.com/taleemtrack/taleemtrack-cli/pkg/logger"
	corsmiddleware "github.com/taleemtrack/taleemtrack-cli/pkg/middleware/cors"
	reqidmiddleware "github.com/taleemtrack/taleemtrack-cli/pkg/middleware/requestid"
)

// Server wires the in-memory repo, seeded users and HTTP surface together.
type Server struct {
	repo        *sessionRepo
	users       map[string]devUser
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     *httpMetrics
	jwtSecret   string
	tokenExpiry time.Duration
	corsOrigins []string
	now         func() time.Time
}

// New builds a Server from configuration.
func New(cfg config.DevServerConfig, l *zap.Logger) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	return &Server{
		repo:        newSessionRepo(),
		users:       seedUsers(),
		validator:   validator.New(),
		logger:      l,
		metrics:     newHTTPMetrics(),
		jwtSecret:   cfg.JWTSecret,
		tokenExpiry: cfg.TokenExpiry,
		corsOrigins: cfg.CORSOrigins,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Seed loads sessions into the repo, for tests and demo data.
func (s *Server) Seed(requests ...models.SessionRequest) error {
	for _, req := range requests {
		if _, err := s.repo.Create(req); err != nil {
			return err
		}
	}
	return nil
}

// Router assembles the gin engine with the full middleware chain and the
// TaleemTrack route table under /api.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(s.logger))
	r.Use(corsmiddleware.New(s.corsOrigins))
	r.Use(s.metrics.middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.POST("/auth/login", s.handleLogin)

	sessions := api.Group("/setup/academic-sessions")
	sessions.Use(s.requireJWT())
	{
		sessions.GET("", s.handleListSessions)
		sessions.GET("/current", s.handleGetCurrentSession)
		sessions.GET("/:id", s.handleGetSession)

		admin := requireRoles(models.RoleSuperAdmin, models.RoleAdmin)
		sessions.POST("", admin, s.handleCreateSession)
		sessions.PUT("/:id", admin, s.handleUpdateSession)
		sessions.PATCH("/:id/set-current", admin, s.handleSetCurrentSession)
		sessions.DELETE("/:id", admin, s.handleDeleteSession)
	}

	return r
}

// Run starts the server on the given port and blocks.
func (s *Server) Run(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.logger.Sugar().Infow("dev server starting", "addr", addr)
	return s.Router().Run(addr)
}
