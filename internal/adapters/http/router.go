package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/pencil-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/pencil-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/pencil-api/internal/platform/config"
	"github.com/jsamuelsen/pencil-api/internal/platform/telemetry"
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// AppConfig names the service for tracing.
	AppConfig *config.AppConfig

	HealthHandler     *handlers.HealthHandler
	QuoteHandler      *handlers.QuoteHandler
	UserHandler       *handlers.UserHandler
	CollectionHandler *handlers.CollectionHandler

	// Timeout bounds /api/v1 handlers. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips /-/ endpoints)
//  6. Timeout - request deadline on /api/v1 only
//
// Route groups:
//   - /-/ (internal): health, stats and metrics
//   - /api/v1/: quotes, users and collections
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)

	serviceName := "pencil-api"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		serviceName = cfg.AppConfig.Name
	}

	engine.Use(telemetry.Middleware(serviceName)...)
	engine.Use(middleware.Logging())

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}

	if cfg.UserHandler != nil {
		cfg.UserHandler.RegisterUserRoutes(rg)
	}

	if cfg.CollectionHandler != nil {
		cfg.CollectionHandler.RegisterCollectionRoutes(rg)
	}
}
