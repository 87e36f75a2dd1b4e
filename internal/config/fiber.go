package config

import (
	"ServeTrack/internal/middleware"
	"ServeTrack/pkg/handlerUtil"
	"errors"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:           "ServeTrack",
			BodyLimit:         8 * 1024 * 1024,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: false,
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      errorHandler(logger),
		})

	return app
}

// errorHandler renders errors that escape handlers in the same
// {"error": ...} shape the handlers use.
func errorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(handlerUtil.ErrorResponse{Error: fiberErr.Message})
		}

		requestID, _ := ctx.Locals(middleware.RequestIDKey).(string)
		return handlerUtil.New(logger).Handle(ctx, requestID, err, ctx.Path(), "unhandled")
	}
}
