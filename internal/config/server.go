package config

import (
	"ServeTrack/database/postgres"
	cameraHandler "ServeTrack/internal/api/camera/handler"
	cameraRepository "ServeTrack/internal/api/camera/repository"
	cameraService "ServeTrack/internal/api/camera/service"
	sessionHandler "ServeTrack/internal/api/editor_session/handler"
	sessionService "ServeTrack/internal/api/editor_session/service"
	"ServeTrack/internal/api/roi/feed"
	roiHandler "ServeTrack/internal/api/roi/handler"
	roiRepository "ServeTrack/internal/api/roi/repository"
	roiService "ServeTrack/internal/api/roi/service"
	streamHandler "ServeTrack/internal/api/stream/handler"
	streamService "ServeTrack/internal/api/stream/service"
	"ServeTrack/internal/middleware"
	"ServeTrack/pkg/log"
	"ServeTrack/pkg/metrics"
	"ServeTrack/pkg/redis"
	"ServeTrack/pkg/utils"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	redisServer redis.IRedis
	metrics     *metrics.Metrics
	handlers    []handler
	closers     []func()
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		if err := postgres.Migrate(db); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		s.db = db
		return nil
	}
}

// WithDB uses an existing connection instead of dialing from the environment.
func WithDB(db *sqlx.DB) ServerOption {
	return func(s *Server) error {
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware(opts ...middleware.Option) ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, opts...)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) error {
		s.metrics = m
		return nil
	}
}

func (s *Server) RegisterHandler() error {
	if s.middleware == nil || s.redisServer == nil || s.utils == nil {
		return fmt.Errorf("middleware, redis and utils are required")
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.validator == nil {
		s.validator = NewValidator()
	}

	// Camera Domain
	cameraRepo := cameraRepository.New(s.db, s.log)
	cameraServices := cameraService.NewCameraService(s.log, cameraRepo)
	cameraHandlers := cameraHandler.New(s.log, s.middleware, cameraServices)

	// ROI Domain
	roiHub := feed.NewHub(s.log, s.metrics)
	roiRepo := roiRepository.New(s.db, s.log)
	roiServices := roiService.NewROIService(s.log, roiRepo, s.redisServer,
		envDuration(s.log, "ROI_CACHE_TTL", defaultROICacheTTL), roiHub, s.metrics)
	roiHandlers := roiHandler.New(s.log, s.validator, s.middleware, roiServices, roiHub)

	// Stream
	streamServices, err := streamService.NewStreamService(s.log, s.utils, s.metrics,
		envDuration(s.log, "STREAM_STALE_AFTER", defaultStreamStale))
	if err != nil {
		return fmt.Errorf("failed to create stream service: %w", err)
	}
	s.closers = append(s.closers, streamServices.Close)
	streamHandlers := streamHandler.New(s.log, s.middleware, streamServices, s.metrics,
		envDuration(s.log, "STREAM_KEEPALIVE", defaultStreamKeepAlive))

	// Editor Sessions
	sessionServices := sessionService.NewSessionService(s.log, s.utils, s.metrics, sessionService.Config{
		APIBaseURL:     roiAPIBaseURL(),
		RequestTimeout: envDuration(s.log, "EDITOR_REQUEST_TIMEOUT", defaultEditorTimeout),
	}, nil)
	sessionHandlers := sessionHandler.New(s.log, s.middleware, sessionServices)

	s.handlers = append(s.handlers, cameraHandlers, roiHandlers, streamHandlers, sessionHandlers)

	return nil
}

// Mount registers middleware and every handler. Run calls it before listening.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(ctx *fiber.Ctx, e interface{}) {
			log.ErrorWithTraceID(log.Fields{
				log.RequestIDKey: s.middleware.GetRequestID(ctx),
				"path":           ctx.Path(),
				"panic":          fmt.Sprint(e),
			}, "Recovered from panic")
		},
	}))
	s.engine.Use(s.middleware.NewLoggingMiddleware)

	s.setupHealthCheck()
	s.setupMetrics()

	router := s.engine.Group("/api/v1", s.middleware.NewRateLimiter)
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.Mount()

	if err := s.engine.Listen(fmt.Sprintf(":%s", appPort())); err != nil {
		return err
	}

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	for _, closeFn := range s.closers {
		closeFn()
	}

	err := s.engine.ShutdownWithTimeout(timeout)

	if s.db != nil {
		if dbErr := s.db.Close(); dbErr != nil && err == nil {
			err = dbErr
		}
	}
	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

func (s *Server) setupMetrics() {
	s.engine.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
}
