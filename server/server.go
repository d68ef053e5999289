package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/health"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/logger"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/tools"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/version"
)

// Server is the HTTP server exposing health, version, and tool
// dispatch endpoints.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger
	registry   *tools.Registry
	checker    *health.Checker
}

// New creates a server with routes and middleware wired. The config
// should have ApplyDefaults called first.
func New(cfg Config, registry *tools.Registry, checker *health.Checker, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	log = log.WithComponent("server")

	engine.Use(RequestID())
	engine.Use(Recovery(log))
	engine.Use(RequestLogger(log))

	s := &Server{
		engine:   engine,
		config:   cfg,
		log:      log,
		registry: registry,
		checker:  checker,
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      engine,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
		},
	}
	s.routes()
	return s
}

// Engine returns the underlying Gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/livez", s.handleLivez)
	s.engine.GET("/readyz", s.handleReadyz)
	s.engine.GET("/version", s.handleVersion)
	s.engine.GET("/tools", s.handleListTools)
	s.engine.POST("/tools/:name", s.handleExecuteTool)
}

// handleHealth reports aggregated health. ?connectivity=true adds a
// live portal check. Unhealthy maps to 503 so orchestrators restart
// the pod; degraded stays 200.
func (s *Server) handleHealth(c *gin.Context) {
	connectivity := c.Query("connectivity") == "true"
	resp := s.checker.Run(c.Request.Context(), connectivity)

	status := http.StatusOK
	if resp.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (s *Server) handleLivez(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReadyz(c *gin.Context) {
	resp := s.checker.Run(c.Request.Context(), false)
	if resp.Status == health.StatusUnhealthy {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, version.GetVersionInfo())
}

func (s *Server) handleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tools":         s.registry.List(),
		"write_enabled": s.registry.WriteEnabled(),
	})
}

// handleExecuteTool dispatches a tool by name with JSON arguments. An
// empty body means no arguments.
func (s *Server) handleExecuteTool(c *gin.Context) {
	args := tools.Args{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&args); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"code":    "INVALID_INPUT",
				"message": "invalid JSON arguments: " + err.Error(),
			}})
			return
		}
	}

	result, err := s.registry.Execute(c.Request.Context(), c.Param("name"), args)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

// Start binds the port and begins serving. It returns once the
// listener is bound so the caller knows the port is ready; serving
// continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
