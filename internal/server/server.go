package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/config"
	"github.com/pageza/macrotrack/backend/internal/api"
	"github.com/pageza/macrotrack/backend/internal/logging"
	"github.com/pageza/macrotrack/backend/internal/middleware"
	"github.com/pageza/macrotrack/backend/internal/router"
	"github.com/pageza/macrotrack/backend/internal/service"
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 5 * time.Second

// Deps are the resources opened by the caller. Redis and Store are optional.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Store  service.ObjectStore
	Logger logging.Logger
}

// Server represents the HTTP server
type Server struct {
	router   *gin.Engine
	http     *http.Server
	services *service.Services
	logger   logging.Logger
}

// New wires services, handlers and routes for cfg
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if err := api.RegisterValidators(); err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.New("server")
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := service.Options{
		JWTSecret:    cfg.JWTSecret,
		Store:        deps.Store,
		ExportURLTTL: cfg.ExportURLTTL,
		Logger:       logger,
	}
	routerOpts := router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	}
	if deps.Redis != nil {
		opts.Cache = service.NewRedisSummaryCache(deps.Redis, 24*time.Hour)
		if cfg.FoodLogRateLimit > 0 {
			routerOpts.FoodLogLimiter = middleware.NewFoodLogRateLimiter(deps.Redis, cfg.FoodLogRateLimit)
		}
	}
	services := service.New(deps.DB, opts)

	handlers := router.Handlers{
		Health:  api.NewHealthHandler(deps.DB, deps.Redis),
		Auth:    api.NewAuthHandler(services.Auth),
		Goals:   api.NewGoalsHandler(services.Goals),
		Meals:   api.NewMealHandler(services.Meals),
		Summary: api.NewSummaryHandler(services.Summary),
		Export:  api.NewExportHandler(services.Export),
	}

	engine := router.SetupRouter(handlers, services.Auth, routerOpts)
	return &Server{
		router:   engine,
		services: services,
		logger:   logger,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Services returns the wired application services
func (s *Server) Services() *service.Services {
	return s.services
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Printf("shutting down")
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
