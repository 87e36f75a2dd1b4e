package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func accessFields(c *fiber.Ctx, start time.Time) logrus.Fields {
	requestID, ok := c.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		requestID = "unknown"
	}

	fields := logrus.Fields{
		"request_id":    requestID,
		"method":        c.Method(),
		"path":          c.Path(),
		"status":        c.Response().StatusCode(),
		"latency_ms":    time.Since(start).Milliseconds(),
		"ip":            c.IP(),
		"user_agent":    c.Get("User-Agent"),
		"response_size": len(c.Response().Body()),
	}

	if body := c.Request().Body(); len(body) > 0 {
		fields["request_body"] = sanitizeRequestBody(string(body))
	}

	return fields
}

func levelFor(status int) logrus.Level {
	switch {
	case status >= 500:
		return logrus.ErrorLevel
	case status >= 400:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

func sanitizeRequestBody(body string) string {
	var jsonBody map[string]interface{}
	if err := json.Unmarshal([]byte(body), &jsonBody); err != nil {
		return "[non-JSON body]"
	}

	sensitiveFields := []string{"password", "token", "access_token", "secret", "authorization"}
	for key := range jsonBody {
		for _, field := range sensitiveFields {
			if strings.EqualFold(key, field) {
				jsonBody[key] = "[SECRET]"
			}
		}
	}

	sanitized, err := json.Marshal(jsonBody)
	if err != nil {
		return "[sanitization-failed]"
	}

	return string(sanitized)
}

type loggingMiddleware struct {
	logger *logrus.Logger
}

func newLoggingMiddleware(logger *logrus.Logger) *loggingMiddleware {
	return &loggingMiddleware{
		logger: logger,
	}
}

// NewLoggingMiddleware writes the access log through the injected logger.
func (m *middleware) NewLoggingMiddleware(ctx *fiber.Ctx) error {
	start := time.Now()
	err := ctx.Next()
	if err != nil {
		// let the app error handler set the status before logging
		if handlerErr := ctx.App().Config().ErrorHandler(ctx, err); handlerErr != nil {
			return handlerErr
		}
		err = nil
	}
	m.loggingMiddleware.logger.WithFields(accessFields(ctx, start)).Log(levelFor(ctx.Response().StatusCode()), "Request completed")
	return err
}
