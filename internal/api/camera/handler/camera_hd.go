package cameraHandler

import (
	contextPkg "ServeTrack/pkg/context"
	"ServeTrack/pkg/handlerUtil"
	jwtPkg "ServeTrack/pkg/jwt"
	"ServeTrack/pkg/log"

	"github.com/gofiber/fiber/v2"
)

func (h *CameraHandler) ListCameras(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := contextPkg.WithTimeout(ctx)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing list cameras request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	result, err := h.cameraService.ListCameras(c, userData)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_cameras")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
