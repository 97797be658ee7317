// Package router assembles the gin engine from middleware and handlers.
package router

import (
	"github.com/chainsync/backend/internal/infrastructure/auth"
	"github.com/chainsync/backend/internal/infrastructure/config"
	"github.com/chainsync/backend/internal/infrastructure/logger"
	"github.com/chainsync/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar registers a handler's routes on the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Options holds everything the router needs besides the handlers
type Options struct {
	Config *config.Config
	Logger *zap.Logger
	Tokens *auth.TokenService
}

// New builds the gin engine with the full middleware chain and mounts the
// given registrars under /api/v1 behind bearer auth. System probes are
// registered by the caller on the returned engine root.
func New(opts Options, registrars ...RouteRegistrar) *gin.Engine {
	if opts.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(opts.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(opts.Config.HTTP.TrustedProxies)
	}

	engine.Use(logger.Recovery(opts.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(&opts.Config.HTTP))
	engine.Use(middleware.Tracing(opts.Config.Telemetry.ServiceName, opts.Config.Telemetry.Enabled))
	engine.Use(logger.GinMiddleware(opts.Logger))
	engine.Use(middleware.BodyLimit(opts.Config.HTTP.MaxBodySize))

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(opts.Tokens))
	for _, registrar := range registrars {
		registrar.RegisterRoutes(api)
	}

	return engine
}
