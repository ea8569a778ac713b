package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/denysvitali/filebrowser-go/pkg/config"
	"github.com/denysvitali/filebrowser-go/pkg/confine"
	"github.com/denysvitali/filebrowser-go/pkg/listing"
	"github.com/denysvitali/filebrowser-go/pkg/sysinfo"
	"github.com/denysvitali/filebrowser-go/pkg/telemetry"
)

// Server represents the HTTP server
type Server struct {
	config    *config.Config
	logger    *logrus.Logger
	resolver  *confine.Resolver
	assembler *listing.Assembler
	sysinfo   *sysinfo.Collector
	tracer    trace.Tracer
	startTime time.Time
	engine    *gin.Engine
	server    *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	resolver, err := confine.NewResolver(cfg.Server.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to create path resolver: %w", err)
	}

	enumerator := listing.NewEnumerator(logger, listing.WithHidden(cfg.Server.ShowHidden))

	// Set gin mode based on log level
	if logger.Level == logrus.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(ginLogger(logger))

	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(telemetry.ServiceName))
	}

	engine.Use(corsMiddleware(cfg.Server.CORSOrigins))

	server := &Server{
		config:    cfg,
		logger:    logger,
		resolver:  resolver,
		assembler: listing.NewAssembler(enumerator),
		sysinfo:   sysinfo.New(resolver.RootDir(), logger),
		tracer:    otel.Tracer(telemetry.ServiceName),
		startTime: time.Now(),
		engine:    engine,
	}
	server.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	server.setupRoutes()

	return server, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithFields(logrus.Fields{
		"addr": s.server.Addr,
		"root": s.resolver.RootDir(),
	}).Info("Starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Engine returns the gin engine for testing purposes
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// setupRoutes configures all HTTP routes.
// Anything not matched below is a browse path and goes to NoRoute.
func (s *Server) setupRoutes() {
	s.engine.GET("/alive", s.handleAlive)
	s.engine.GET("/server_info", s.handleServerInfo)
	s.engine.StaticFS(staticPrefix, staticFileSystem())

	s.engine.GET("/", s.handleBrowse)
	s.engine.NoRoute(s.handleBrowse)
}
