package streamHandler

import (
	streamService "ServeTrack/internal/api/stream/service"
	"ServeTrack/internal/middleware"
	"ServeTrack/pkg/metrics"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

const DefaultKeepAlive = 2 * time.Second

type StreamHandler struct {
	log           *logrus.Logger
	middleware    middleware.Middleware
	streamService streamService.IStreamService
	metrics       *metrics.Metrics
	keepAlive     time.Duration
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	ss streamService.IStreamService,
	m *metrics.Metrics,
	keepAlive time.Duration,
) *StreamHandler {
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	return &StreamHandler{
		log:           log,
		middleware:    middleware,
		streamService: ss,
		metrics:       m,
		keepAlive:     keepAlive,
	}
}

func (h *StreamHandler) Start(srv fiber.Router) {
	// <img> tags cannot send an Authorization header
	srv.Get("/video_feed_processed", h.VideoFeed)

	stream := srv.Group("/stream")
	stream.Get("/info", h.Info)
	stream.Get("/ws/ingest",
		h.middleware.NewTokenMiddleware,
		h.middleware.RequireAdmin,
		h.upgradeOnly,
		websocket.New(h.handleIngest, websocket.Config{ReadBufferSize: 64 * 1024}),
	)
}

func (h *StreamHandler) upgradeOnly(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}
