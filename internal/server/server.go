// Package server wires configuration, storage, services, and HTTP routing
// into a runnable Fiber application.
package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"campstead/internal/cache"
	"campstead/internal/config"
	"campstead/internal/middleware"
	"campstead/internal/models"
	"campstead/internal/repository"
	"campstead/internal/service"
	"campstead/internal/session"
	"campstead/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// Server holds all application dependencies and the Fiber app.
type Server struct {
	app      *fiber.App
	config   *config.Config
	db       *gorm.DB
	sessions *session.Store

	identity    *service.IdentityService
	campgrounds *service.CampgroundService
	reviews     *service.ReviewService
}

// New builds a fully wired server from its external dependencies.
func New(cfg *config.Config, db *gorm.DB, sessions *session.Store, images storage.Store) *Server {
	userRepo := repository.NewUserRepository(db)
	campgroundRepo := repository.NewCampgroundRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		sessions:    sessions,
		identity:    service.NewIdentityService(userRepo),
		campgrounds: service.NewCampgroundService(campgroundRepo, images),
		reviews:     service.NewReviewService(reviewRepo, campgroundRepo),
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "campstead",
		ErrorHandler: s.errorHandler,
		BodyLimit:    20 * 1024 * 1024, // image uploads
	})

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen starts serving on the configured port.
func (s *Server) Listen() error {
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) setupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(helmet.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowCredentials: true,
	}))

	s.app.Use(s.SessionMiddleware())
	s.app.Use(middleware.ContextMiddleware())
	s.app.Use(middleware.StructuredLogger())
	s.app.Use(middleware.MethodOverride())
	s.app.Use(middleware.RateLimit(cache.GetClient(), 300, time.Minute, "global"))

	promOnce.Do(func() {
		promInstance = middleware.InitMetrics("campstead")
	})
	promInstance.RegisterAt(s.app, "/metrics")
	s.app.Use(middleware.MetricsMiddleware(promInstance))
}

func (s *Server) setupRoutes() {
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/campgrounds", fiber.StatusSeeOther)
	})

	s.app.Get("/health/live", s.healthLive)
	s.app.Get("/health/ready", s.healthReady)

	s.app.Get("/register", s.registerForm)
	s.app.Post("/register", middleware.RateLimit(cache.GetClient(), 5, time.Minute, "register"), s.register)
	s.app.Get("/login", s.loginForm)
	s.app.Post("/login", middleware.RateLimit(cache.GetClient(), 10, time.Minute, "login"), s.login)
	s.app.Post("/logout", s.logout)
	s.app.Get("/logout", s.logout)
	s.app.Get("/session/flash", s.sessionFlash)

	s.app.Get("/campgrounds", s.listCampgrounds)
	s.app.Post("/campgrounds", middleware.RateLimit(cache.GetClient(), 20, time.Minute, "campground_create"), s.RequireAuth(), s.createCampground)
	s.app.Get("/campgrounds/new", s.RequireAuth(), s.newCampgroundForm)
	s.app.Get("/campgrounds/:id", s.showCampground)
	s.app.Get("/campgrounds/:id/edit", s.RequireAuth(), s.editCampgroundForm)
	s.app.Put("/campgrounds/:id", s.RequireAuth(), s.updateCampground)
	s.app.Delete("/campgrounds/:id", s.RequireAuth(), s.deleteCampground)

	s.app.Post("/campgrounds/:id/reviews", s.RequireAuth(), s.createReview)
	s.app.Delete("/campgrounds/:id/reviews/:reviewID", s.RequireAuth(), s.deleteReview)
}

// errorHandler is the terminal error sink: anything a handler did not
// convert to a redirect lands here and is rendered as JSON.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}

	status := models.StatusForError(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
			"path", c.Path(),
			"error", err,
		)
	}
	return models.RespondWithError(c, status, err)
}
