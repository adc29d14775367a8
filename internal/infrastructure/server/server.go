package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"

	handlers "github.com/GriffinCanCode/AgentOS/zenexplorer/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/session"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	explorerProvider "github.com/GriffinCanCode/AgentOS/zenexplorer/internal/providers/explorer"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router    *gin.Engine
	http      *http.Server
	workspace *explorer.Workspace
	sessions  *session.Manager
	registry  *service.Registry
	tracer    *tracing.Tracer
	logger    *logging.Logger
	config    *config.Config
	metrics   *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger := logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing ZenExplorer server",
		zap.String("port", cfg.Server.Port),
		zap.String("c_root", cfg.Drives.CRoot),
	)

	// Metrics first, every other component records into them
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("zenexplorer", logger)

	opts := explorer.Options{
		Explorer: cfg.Explorer,
		Reserved: cfg.Drives.Reserved,
		Log:      logger,
		Metrics:  metrics,
	}
	if cfg.Drives.CRoot != "" {
		if err := os.MkdirAll(cfg.Drives.CRoot, 0o755); err != nil {
			tracer.Close()
			return nil, fmt.Errorf("prepare C: root: %w", err)
		}
		opts.CDrive = osfs.New(cfg.Drives.CRoot)
		opts.CDriveOptions = []vfs.Option{vfs.WithNativeRename()}
	}

	workspace, err := explorer.NewWorkspace(ctx, opts)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	sessions, err := newSessions(ctx, cfg, workspace, logger)
	if err != nil {
		workspace.Close()
		tracer.Close()
		return nil, err
	}

	registry := service.NewRegistry().WithLogger(logger).WithTracer(tracer)
	provider := explorerProvider.NewProvider(workspace, logger).WithSessions(sessions)
	if err := registry.Register(provider); err != nil {
		workspace.Close()
		tracer.Close()
		return nil, fmt.Errorf("failed to register explorer provider: %w", err)
	}

	router := NewRouter(cfg, workspace, registry, tracer, metrics, logger)

	logger.Info("Server initialized successfully")

	return &Server{
		router:    router,
		workspace: workspace,
		sessions:  sessions,
		registry:  registry,
		tracer:    tracer,
		logger:    logger,
		config:    cfg,
		metrics:   metrics,
	}, nil
}

// newSessions opens the session store and restores the default session
// saved by the previous run
func newSessions(ctx context.Context, cfg *config.Config, workspace *explorer.Workspace, logger *logging.Logger) (*session.Manager, error) {
	var store billy.Filesystem = memfs.New()
	if dir := cfg.Explorer.SessionDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("prepare session dir: %w", err)
		}
		store = osfs.New(dir)
	}

	sessions := session.NewManager(workspace, store, logger)
	if err := sessions.Init(); err != nil {
		return nil, err
	}
	if err := sessions.Restore(ctx, session.DefaultID); err != nil && !errors.Is(err, session.ErrNotFound) {
		logger.Warn("Failed to restore default session", zap.Error(err))
	}
	return sessions, nil
}

// NewRouter builds the gin engine with middleware and routes
func NewRouter(
	cfg *config.Config,
	workspace *explorer.Workspace,
	registry *service.Registry,
	tracer *tracing.Tracer,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
) *gin.Engine {
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))

	router.Use(middleware.CORS(middleware.CORSForOrigins(cfg.Server.CORSOrigins)))

	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			IdleTTL:           cfg.RateLimit.IdleTTL,
		}))
	}

	h := handlers.NewHandlers(workspace, registry, metrics, logger)
	wsHandler := ws.NewHandler(workspace.Bus(), registry, metrics, logger)

	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	// Service management
	router.GET("/services", h.ListServices)
	router.POST("/services/discover", h.DiscoverServices)
	router.POST("/services/execute", h.ExecuteService)

	// Explorer windows
	router.GET("/explorer/windows", h.ListWindows)
	router.GET("/explorer/windows/:id/state", h.WindowState)
	router.GET("/explorer/windows/:id/listing", h.WindowListing)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", h.MetricsJSON)

	return router
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var shutdownErr error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
			shutdownErr = fmt.Errorf("failed to shut down http server: %w", err)
		}
	}

	if s.config.Explorer.SessionDir != "" {
		if _, err := s.sessions.SaveDefault(ctx); err != nil {
			s.logger.Warn("Failed to save default session", zap.Error(err))
		}
	}

	s.workspace.Close()
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()

	return shutdownErr
}
