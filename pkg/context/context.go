package context

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

type ctxKey string

const RequestIDKey = "request_id"

const requestIDCtxKey ctxKey = RequestIDKey

// DefaultRequestTimeout bounds every handler's downstream work.
const DefaultRequestTimeout = 10 * time.Second

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	requestID, ok := ctx.Value(requestIDCtxKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func FromFiberCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()

	requestID, ok := c.Locals("X-Request-ID").(string)
	if !ok || requestID == "" {
		requestID = c.Get("X-Request-ID")

		if requestID == "" {
			requestID = "unknown"
		}
	}

	return WithRequestID(ctx, requestID)
}

// WithTimeout is FromFiberCtx bounded by DefaultRequestTimeout.
func WithTimeout(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(FromFiberCtx(c), DefaultRequestTimeout)
}
