package roiHandler

import (
	"ServeTrack/internal/api/roi/feed"
	roiService "ServeTrack/internal/api/roi/service"
	"ServeTrack/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ROIHandler struct {
	log        *logrus.Logger
	validator  *validator.Validate
	middleware middleware.Middleware
	roiService roiService.IROIService
	hub        *feed.Hub
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	rs roiService.IROIService,
	hub *feed.Hub,
) *ROIHandler {
	return &ROIHandler{
		log:        log,
		validator:  validate,
		middleware: middleware,
		roiService: rs,
		hub:        hub,
	}
}

func (h *ROIHandler) Start(srv fiber.Router) {
	roi := srv.Group("/roi")

	// Detector change feed
	roi.Get("/feed/ws", h.middleware.NewTokenMiddleware, h.upgradeOnly, websocket.New(h.handleFeed))

	roi.Get("/:cameraId", h.middleware.NewTokenMiddleware, h.GetROI)
	roi.Post("/:cameraId", h.middleware.NewTokenMiddleware, h.middleware.RequireAdmin, h.SaveROI)
	roi.Delete("/:cameraId", h.middleware.NewTokenMiddleware, h.middleware.RequireAdmin, h.DeleteROI)
}

func (h *ROIHandler) upgradeOnly(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}
