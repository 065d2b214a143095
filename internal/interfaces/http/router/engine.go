package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/infrastructure/config"
	"github.com/iletigo/mutabakat/internal/infrastructure/logger"
	"github.com/iletigo/mutabakat/internal/infrastructure/telemetry"
	"github.com/iletigo/mutabakat/internal/interfaces/http/handler"
	"github.com/iletigo/mutabakat/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const attachmentUploadPath = "/reconciliations/:id/attachments"

// Config selects the middleware stack of the engine
type Config struct {
	HTTP          config.HTTPConfig
	Swagger       config.SwaggerConfig
	Tracing       middleware.TracingConfig
	Profiling     bool
	MeterProvider *telemetry.MeterProvider
	JWT           middleware.JWTMiddlewareConfig
	Logger        *zap.Logger
}

// Handlers are the HTTP handlers mounted by the engine
type Handlers struct {
	Auth           *handler.AuthHandler
	Reconciliation *handler.ReconciliationHandler
	Dashboard      *handler.DashboardHandler
	System         *handler.SystemHandler
}

// Engine is the configured gin engine plus the resources it owns
type Engine struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
	routes   []RouteInfo
}

// New builds the engine: global middleware, /health, /swagger and the
// versioned API.
func New(cfg Config, h Handlers) *Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.JWT.Logger == nil {
		cfg.JWT.Logger = log
	}

	middleware.SetupValidator()

	e := &Engine{Engine: gin.New()}
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := e.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request id must exist before tracing and logging
	// read it, and recovery must wrap everything that can panic.
	e.Use(middleware.RequestID())
	if cfg.Tracing.Enabled {
		e.Use(middleware.Tracing(cfg.Tracing))
	}
	e.Use(logger.Recovery(log))
	e.Use(logger.GinMiddleware(log))
	e.Use(middleware.Secure())
	e.Use(middleware.CORS(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	// oversized attachments are a validation failure, not a transport one
	r := NewRouter(e.Engine, WithAPIVersion("v1"))
	e.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize,
		middleware.WithRouteRejection(joinPath(r.BasePath(), attachmentUploadPath),
			http.StatusBadRequest, reconciliation.ErrAttachmentTooLarge.Message)))
	if cfg.HTTP.RateLimitEnabled {
		limiter := e.newLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		e.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	e.Use(middleware.HTTPMetrics(cfg.MeterProvider, log))
	e.Use(middleware.Profiling(cfg.Profiling))
	e.Use(middleware.RequestOrigin())
	if cfg.Tracing.Enabled {
		e.Use(middleware.SpanErrorMarker())
	}

	jwtAuth := middleware.JWTAuth(cfg.JWT)
	authenticated := []gin.HandlerFunc{jwtAuth}
	if cfg.Tracing.Enabled {
		authenticated = append(authenticated, middleware.TracingAttributeInjector())
	}

	e.GET("/health", h.System.Health)
	e.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, jwtAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	var loginChain []gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		loginChain = append(loginChain, middleware.AuthRateLimit(
			e.newLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)))
	}

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", chain(loginChain, h.Auth.Login)...)
	authRoutes.GET("/me", chain(authenticated, h.Auth.Me)...)
	authRoutes.POST("/logout", chain(authenticated, h.Auth.Logout)...)

	dashboardRoutes := NewDomainGroup("dashboard", "/dashboard").Use(authenticated...)
	dashboardRoutes.GET("/stats", h.Dashboard.Stats)

	recon := h.Reconciliation
	reconRoutes := NewDomainGroup("reconciliations", "/reconciliations").Use(authenticated...)
	reconRoutes.POST("", recon.Create)
	reconRoutes.GET("", recon.List)
	reconRoutes.GET("/export", recon.Export)
	reconRoutes.GET("/:id", recon.Get)
	reconRoutes.PATCH("/:id", recon.Update)
	reconRoutes.POST("/:id/details", recon.AddDetail)
	reconRoutes.GET("/:id/details", recon.ListDetails)
	reconRoutes.POST("/:id/attachments", recon.UploadAttachment)
	reconRoutes.GET("/:id/attachments", recon.ListAttachments)
	reconRoutes.GET("/:id/attachments/:attachmentId/download", recon.DownloadAttachment)
	reconRoutes.POST("/:id/comments", recon.AddComment)
	reconRoutes.GET("/:id/comments", recon.ListComments)
	reconRoutes.POST("/:id/pdf", recon.GenerateReport)

	for _, group := range []*DomainGroup{authRoutes, dashboardRoutes, reconRoutes} {
		r.Register(group)
		for _, info := range group.Routes() {
			e.routes = append(e.routes, RouteInfo{Method: info.Method, Path: joinPath(r.BasePath(), info.Path)})
		}
	}
	r.Setup()

	return e
}

// chain returns mws followed by fn in a fresh slice
func chain(mws []gin.HandlerFunc, fn gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mws)+1)
	out = append(out, mws...)
	return append(out, fn)
}

func (e *Engine) newLimiter(requests int, window time.Duration) *middleware.RateLimiter {
	limiter := middleware.NewRateLimiter(requests, window)
	e.limiters = append(e.limiters, limiter)
	return limiter
}

// APIRoutes lists the versioned API routes
func (e *Engine) APIRoutes() []RouteInfo {
	return e.routes
}

// Close stops the background work owned by the engine
func (e *Engine) Close() {
	for _, limiter := range e.limiters {
		limiter.Stop()
	}
}
