package roiHandler

import (
	"ServeTrack/internal/api/roi"
	contextPkg "ServeTrack/pkg/context"
	"ServeTrack/pkg/handlerUtil"
	jwtPkg "ServeTrack/pkg/jwt"
	"ServeTrack/pkg/log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func parseCameraID(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("cameraId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, roi.ErrInvalidCameraID
	}
	return id, nil
}

func (h *ROIHandler) GetROI(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := contextPkg.WithTimeout(ctx)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	cameraID, err := parseCameraID(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_roi")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"camera_id":  cameraID,
	}).Debug("Processing get roi request")

	result, err := h.roiService.GetROI(c, userData, cameraID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_roi")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *ROIHandler) SaveROI(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := contextPkg.WithTimeout(ctx)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	cameraID, err := parseCameraID(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "save_roi")
	}

	var req roi.SaveROIRequest
	if err := ctx.BodyParser(&req); err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to parse roi body")
		return errHandler.Handle(ctx, requestID, roi.ErrInvalidROI, ctx.Path(), "save_roi")
	}

	if err := h.validator.Struct(req); err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"camera_id":  cameraID,
			"error":      err.Error(),
		}).Warn("ROI validation failed")
		return errHandler.Handle(ctx, requestID, roi.ErrInvalidROI, ctx.Path(), "save_roi")
	}

	result, err := h.roiService.SaveROI(c, userData, cameraID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "save_roi")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *ROIHandler) DeleteROI(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := contextPkg.WithTimeout(ctx)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	cameraID, err := parseCameraID(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_roi")
	}

	result, err := h.roiService.DeleteROI(c, userData, cameraID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_roi")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
