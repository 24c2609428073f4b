package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"migration-backend/internal/auth"
	"migration-backend/internal/migration"
	"migration-backend/internal/repositories"
	"migration-backend/internal/scan"
	"migration-backend/internal/shared/config"
	"migration-backend/internal/shared/metrics"
	"migration-backend/internal/shared/server/middleware"
	"migration-backend/internal/shared/server/respond"
	"migration-backend/internal/sonar"
)

// RouterDeps carries the handlers and services the router wires up.
type RouterDeps struct {
	Config            config.Config
	RepositoryHandler *repositories.Handler
	ScanHandler       *scan.Handler
	SonarHandler      *sonar.Handler
	MigrationHandler  *migration.Handler
	GitHubAuth        *auth.GitHubService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.GitHubToken(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"ANALYZE": {Rate: 0.2, Burst: 3},
				"DEFAULT": {Rate: 5, Burst: 20},
			},
			GroupFor: rateLimitGroup,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GitHubAuth != nil {
		deps.GitHubAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.RepositoryHandler != nil {
		deps.RepositoryHandler.RegisterRoutes(api)
	}
	if deps.ScanHandler != nil {
		deps.ScanHandler.RegisterRoutes(api)
	}
	if deps.SonarHandler != nil {
		deps.SonarHandler.RegisterRoutes(api)
	}
	if deps.MigrationHandler != nil {
		deps.MigrationHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitGroup puts clone-heavy operations under a stricter budget.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return "DEFAULT"
	}
	switch c.FullPath() {
	case "/api/v1/repository/analyze", "/api/v1/scan/licenses",
		"/api/v1/migration/convert", "/api/v1/migration/preview":
		return "ANALYZE"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
