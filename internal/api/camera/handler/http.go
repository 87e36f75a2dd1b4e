package cameraHandler

import (
	cameraService "ServeTrack/internal/api/camera/service"
	"ServeTrack/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CameraHandler struct {
	log           *logrus.Logger
	middleware    middleware.Middleware
	cameraService cameraService.ICameraService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	cs cameraService.ICameraService,
) *CameraHandler {
	return &CameraHandler{
		log:           log,
		middleware:    middleware,
		cameraService: cs,
	}
}

func (h *CameraHandler) Start(srv fiber.Router) {
	cameras := srv.Group("/cameras")

	cameras.Get("", h.middleware.NewTokenMiddleware, h.ListCameras)
}
