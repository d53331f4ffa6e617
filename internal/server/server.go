package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/oooAHOYooo/pathr/internal/auth"
	"github.com/oooAHOYooo/pathr/internal/config"
	"github.com/oooAHOYooo/pathr/internal/details"
	"github.com/oooAHOYooo/pathr/internal/live"
	"github.com/oooAHOYooo/pathr/internal/media"
	"github.com/oooAHOYooo/pathr/internal/social"
	"github.com/oooAHOYooo/pathr/internal/stream"
	"github.com/oooAHOYooo/pathr/internal/trip"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigin}))

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

// errorHandler renders every handler error as an {"error": ...} JSON body.
// Handlers raise 400 for any v1 failure; only the JWT middleware uses 401.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusBadRequest
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	authSvc := auth.NewService(s.Cfg.JWTSecret, s.DB)
	v1 := s.App.Group("/v1")

	auth.RegisterRoutes(v1, authSvc)
	trip.RegisterRoutes(v1, trip.NewService(s.DB), authSvc)
	details.RegisterRoutes(v1, details.NewService(s.DB))
	media.RegisterRoutes(v1, media.NewService(s.DB), jwtMiddleware)
	social.RegisterRoutes(v1.Group("/social"), social.NewService(s.DB), jwtMiddleware)
	live.RegisterRoutes(v1, live.NewService(s.DB, s.Stream), jwtMiddleware)
	stream.RegisterRoutes(v1, s.Stream)
}
