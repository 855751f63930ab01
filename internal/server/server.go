// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"time"

	"photogram/internal/config"
	"photogram/internal/middleware"
	"photogram/internal/models"
	"photogram/internal/repository"
	"photogram/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          *repository.Store
	promMiddleware *fiberprometheus.FiberPrometheus

	postService     *service.PostService
	commentService  *service.CommentService
	favoriteService *service.FavoriteService
	storyService    *service.StoryService
	userService     *service.UserService
}

// NewServer creates a server over store. All services share one mutation lock.
func NewServer(cfg *config.Config, store *repository.Store) *Server {
	deps := service.NewDeps(store)
	deps.DemoUserID = cfg.DemoUserID
	if cfg.SimulatedLatency {
		deps.Latency = service.SimulatedLatency()
	}
	svcs := service.New(deps)

	return &Server{
		config:          cfg,
		store:           store,
		promMiddleware:  middleware.InitMetrics("photogram"),
		postService:     svcs.Posts,
		commentService:  svcs.Comments,
		favoriteService: svcs.Favorites,
		storyService:    svcs.Stories,
		userService:     svcs.Users,
	}
}

// NewApp builds a fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "photogram",
		ErrorHandler: errorHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler answers errors that escape handlers in the standard shape.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	storage := api.Group("/storage")
	storage.Get("/", s.GetCollections)
	storage.Post("/initialize", s.InitializeStorage)
	api.Put("/collections/:name", s.ReplaceCollection)

	api.Get("/me", s.GetCurrentUser)
	api.Get("/feed", s.GetFeed)
	api.Get("/search", s.Search)

	users := api.Group("/users")
	users.Get("/", s.GetUsers)
	// Specific routes before the generic /:id route
	users.Get("/by-username/:username", s.GetUserByUsername)
	users.Get("/:id/posts", s.GetUserPosts)
	users.Get("/:id/favorites", s.GetUserFavorites)
	users.Get("/:id/bookmarks", s.GetUserBookmarks)
	users.Get("/:id/stories", s.GetUserStories)
	users.Get("/:id", s.GetUser)

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", s.CreatePost)
	posts.Post("/:id/like", s.ToggleLike)
	posts.Post("/:id/bookmark", s.ToggleBookmark)
	posts.Get("/:id/status", s.GetPostStatus)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", s.CreateComment)
	posts.Get("/:id", s.GetPost)

	stories := api.Group("/stories")
	stories.Get("/", s.GetStories)
	stories.Post("/:id/view", s.MarkStoryViewed)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports whether the storage backend answers.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	backend := s.store.Backend()
	status, code := "healthy", fiber.StatusOK
	if err := backend.Ping(ctx); err != nil {
		status, code = "unhealthy", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"storage": fiber.Map{
			"backend": backend.Name(),
			"status":  status,
		},
	})
}

// Shutdown releases the storage backend.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Backend().Close()
}
