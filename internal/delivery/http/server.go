package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/ivangsquared/poc-address-finder/internal/config"
	"github.com/ivangsquared/poc-address-finder/internal/delivery/http/handler"
	"github.com/ivangsquared/poc-address-finder/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

// Server is the Fiber HTTP front of the address finder.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	lookupHandler    *handler.LookupHandler
	selectionHandler *handler.SelectionHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	lookupHandler *handler.LookupHandler,
	selectionHandler *handler.SelectionHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "POC Address Finder",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		lookupHandler:    lookupHandler,
		selectionHandler: selectionHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Legacy mock lookup endpoints with fixed flat response shapes.
	s.app.Get("/api/addressfinder", s.lookupHandler.GetAddress)
	s.app.Get("/api/geocode", s.lookupHandler.GetGeocode)

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Selection session routes
	api.Post("/sessions", s.selectionHandler.CreateSession)
	api.Get("/sessions/:id", s.selectionHandler.GetSession)
	api.Delete("/sessions/:id", s.selectionHandler.DeleteSession)
	api.Post("/sessions/:id/select", s.selectionHandler.SelectPoint)
	api.Post("/sessions/:id/locate", s.selectionHandler.UseCurrentLocation)
	api.Put("/sessions/:id/address", s.selectionHandler.EditAddress)
	api.Post("/sessions/:id/confirm", s.selectionHandler.Confirm)
	api.Get("/sessions/:id/markers", s.selectionHandler.GetMarkers)
}

func (s *Server) Start() error {
	return s.app.Listen(s.config.GetServerAddr())
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
