// Package server exposes view sessions over a JSON HTTP API so a browser
// front-end can drive the same controller the terminal renderers use.
package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/kevinmichaelchen/repo-view/internal/session"
	"github.com/kevinmichaelchen/repo-view/internal/view"
)

type Server struct {
	app    *fiber.App
	loader *session.Loader
	store  session.Store
	opts   []view.Option
	log    *log.Logger
	newID  func() string

	// mu serializes read-modify-write cycles on stored snapshots.
	mu sync.Mutex
}

type Config struct {
	RequestTimeout time.Duration
	ViewOptions    []view.Option
}

func New(loader *session.Loader, store session.Store, logger *log.Logger, cfg Config) *Server {
	s := &Server{
		loader: loader,
		store:  store,
		opts:   cfg.ViewOptions,
		log:    logger,
		newID:  uuid.NewString,
	}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:           cfg.RequestTimeout,
		WriteTimeout:          cfg.RequestTimeout,
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(requestLogger(logger))

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	api := s.app.Group("/api")
	api.Post("/sessions", s.createSession)
	api.Get("/sessions/:id", s.getSession)
	api.Post("/sessions/:id/events", s.postEvent)
	api.Delete("/sessions/:id", s.deleteSession)

	return s
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

func (s *Server) Shutdown() error { return s.app.Shutdown() }

// requestLogger logs HTTP requests with method, path, status and duration.
func requestLogger(l *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		reqID, _ := c.Locals("requestid").(string)
		l.Info("http",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
			"request_id", reqID,
		)
		return err
	}
}
