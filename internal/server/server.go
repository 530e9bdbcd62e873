package server

import (
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/auth"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/channel"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/config"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/db"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/radio"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/stream"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/tracker"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/trail"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Stream  *stream.Hub
	Tracker *tracker.Service
}

func NewServer(cfg config.Config, pool *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	// A nil pool must stay a nil Querier, not an interface wrapping nil.
	var querier db.Querier
	if pool != nil {
		querier = pool
	}

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:     app,
		Cfg:     cfg,
		DB:      pool,
		Redis:   redisClient,
		Stream:  hub,
		Tracker: tracker.NewService(querier, hub, trail.NewStore(cfg.RetentionMinutes)),
	}

	registerRoutes(s, querier)
	return s
}

func registerRoutes(s *Server, querier db.Querier) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, querier))
	tracker.RegisterRoutes(s.App.Group("/mesh"), s.Tracker, jwtMiddleware)
	radio.RegisterRoutes(s.App.Group("/radios"), radio.NewService(querier), jwtMiddleware)
	channel.RegisterRoutes(s.App.Group("/channels"), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
