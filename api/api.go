package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/motorlogic/garage/pkg/core"
)

// Server is the API server for the garage session state system
type Server struct {
	config Config
	core   *core.Core
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The core facade is injected so every mutation flows through the sync
// engine regardless of which surface requested it.
func NewServer(config Config, c *core.Core, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		core:   c,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)

	app.Post("/sessions", s.handleCreateSession)
	app.Get("/sessions/:id", s.handleGetSession)
	app.Delete("/sessions/:id", s.handleEndSession)
	app.Post("/sessions/:id/turns", s.handleCommitTurn)
	app.Get("/sessions/:id/context", s.handleGetContext)
	app.Get("/sessions/:id/state/:key", s.handleGetState)
	app.Put("/sessions/:id/state/:key", s.handleSetState)
	app.Put("/sessions/:id/title", s.handleSetTitle)
	app.Post("/sessions/:id/claim", s.handleClaimSession)

	app.Get("/owners/:id/sessions", s.handleListSessions)
	app.Post("/owners/:id/profiles", s.handleAddProfile)
	app.Get("/owners/:id/profiles", s.handleListProfiles)
	app.Delete("/owners/:id/profiles/:profileID", s.handleDeleteProfile)

	app.Get("/owners/:id/sync", s.handleOpsSince)
	app.Get("/owners/:id/sync/stream", s.handleSyncStream)
	app.Post("/owners/:id/sync/replay", s.handleReplay)

	app.Put("/owners/:id/retention", s.handleSetRetention)
	app.Get("/owners/:id/export", s.handleExport)
	app.Delete("/owners/:id", s.handleErase)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}
