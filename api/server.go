// Package api exposes the engine's read-only views over HTTP. Trades settle
// through the embedding host, never through this surface, so every endpoint
// is a GET and the server holds no mutable state of its own.
package api

import (
	"context"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moonforge-labs/launchpad/launch/engine"
	"github.com/moonforge-labs/launchpad/launch/types"
)

// ContextSource produces the execution context queries are evaluated at.
// The embedding host anchors it to its current block height and time.
type ContextSource func() types.Context

// Config holds server settings.
type Config struct {
	Addr            string
	CORSOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default server settings.
func DefaultConfig() Config {
	return Config{
		Addr:            "0.0.0.0:5000",
		CORSOrigins:     []string{"*"},
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server serves the query API for one engine instance.
type Server struct {
	router *gin.Engine
	engine *engine.Engine
	ctxFor ContextSource
	config Config
	logger log.Logger

	httpSrv *http.Server
}

// NewServer wires the router. ctxFor must not be nil.
func NewServer(eng *engine.Engine, ctxFor ContextSource, cfg Config, logger log.Logger) (*Server, error) {
	if eng == nil {
		return nil, types.ErrInvalidInput.Wrap("engine is required")
	}
	if ctxFor == nil {
		return nil, types.ErrInvalidInput.Wrap("context source is required")
	}
	if cfg.Addr == "" {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	s := &Server{
		engine: eng,
		ctxFor: ctxFor,
		config: cfg,
		logger: logger.With("module", "api"),
	}
	s.setupRouter()
	return s, nil
}

func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)
	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggerMiddleware())
	s.router.Use(s.corsMiddleware())

	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/tokens", s.handleListTokens)

		pools := api.Group("/pools")
		{
			pools.GET("/:token", s.handlePoolInfo)
			pools.GET("/:token/fees", s.handleFeeInfo)
			pools.GET("/:token/creator-fees", s.handleCreatorFeeInfo)
			pools.GET("/:token/stats", s.handlePostGraduationStats)
			pools.GET("/:token/quote/buy", s.handleQuoteBuy)
			pools.GET("/:token/quote/sell", s.handleQuoteSell)
		}
	}
}

// Handler exposes the router for tests and custom mounting.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains with the configured
// shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("query api listening", "addr", s.config.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.logger.Info("query api shutting down")
	return s.httpSrv.Shutdown(shutdownCtx)
}
