// Package server exposes the save editor over a local HTTP JSON API, the
// surface the web frontend talks to.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"peacockedit/internal/config"
	"peacockedit/internal/editor"
	"peacockedit/internal/logging"
	"peacockedit/internal/profile"
)

// Version is stamped into health responses.
const Version = "1.0.0"

// Server wires the gin engine to the editor.
type Server struct {
	editor     *editor.Editor
	engine     *gin.Engine
	httpServer *http.Server
	startTime  time.Time
	logger     *logging.Logger
}

// New builds the HTTP server around an editor instance.
func New(cfg *config.ServerConfig, ed *editor.Editor) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	if cfg.Debug {
		engine.Use(gin.Logger())
	}

	if cfg.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
		engine.Use(cors.New(corsConfig))
	}

	s := &Server{
		editor:    ed,
		engine:    engine,
		startTime: time.Now(),
		logger:    logging.NewComponentLogger("Server"),
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	s.setupRoutes()
	return s
}

// Engine exposes the router, used by the HTTP tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	api.Use(jsonMiddleware())

	api.GET("/health", s.handleHealth)
	api.GET("/status", s.handleStatus)

	api.GET("/profiles", s.handleListProfiles)
	api.GET("/profiles/:id", s.handleGetProfile)
	api.POST("/profiles/:id/update", s.handleUpdateProfile)

	api.GET("/challenges", s.handleListChallenges)
	api.GET("/escalations", s.handleListEscalations)
	api.GET("/stories", s.handleListStories)
	api.GET("/locations", s.handleListLocations)

	unlock := api.Group("/unlock")
	{
		unlock.POST("/challenges", s.handleUnlockChallenges)
		unlock.POST("/escalations", s.handleUnlockEscalations)
		unlock.POST("/stories", s.handleUnlockStories)
		unlock.POST("/mastery", s.handleUnlockMastery)
		unlock.POST("/content", s.handleUnlockContent)
	}

	lock := api.Group("/lock")
	{
		lock.POST("/challenges", s.handleLockChallenges)
		lock.POST("/escalations", s.handleLockEscalations)
		lock.POST("/stories", s.handleLockStories)
		lock.POST("/all", s.handleLockAll)
	}

	api.GET("/settings", s.handleGetSettings)
	api.POST("/settings", s.handleUpdateSettings)

	backup := api.Group("/backup")
	{
		backup.POST("/create", s.handleCreateBackup)
		backup.POST("/restore", s.handleRestoreBackup)
	}

	api.GET("/activity", s.handleGetActivity)
	api.POST("/activity", s.handlePostActivity)
	api.DELETE("/activity", s.handleClearActivity)
}

// Start blocks serving HTTP until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: HealthResponse{
			Status:    "ok",
			Version:   Version,
			Timestamp: time.Now(),
			Uptime:    time.Since(s.startTime).String(),
		},
	})
}

// statusFor maps operation errors to HTTP status codes: expected
// not-found conditions are 404, everything else is a server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, editor.ErrInstallNotFound),
		errors.Is(err, profile.ErrNoProfiles),
		errors.Is(err, profile.ErrNoBackups):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondMutation renders the uniform success/error envelope used by every
// mutating endpoint.
func (s *Server) respondMutation(c *gin.Context, message string, err error) {
	if err != nil {
		s.logger.Warn("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: message})
}
