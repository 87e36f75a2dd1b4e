package middleware

import (
	jwtPkg "ServeTrack/pkg/jwt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

type tokenMiddleware struct {
	secret string
}

func newTokenMiddleware() *tokenMiddleware {
	return &tokenMiddleware{}
}

func (t *tokenMiddleware) secretKey() string {
	if t.secret != "" {
		return t.secret
	}
	return os.Getenv(AccessTokenSecret)
}

func (m *middleware) unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	fields := logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"method":     ctx.Method(),
		"client_ip":  ctx.IP(),
	}

	accessToken, err := jwtPkg.TokenFromRequest(ctx)
	if err != nil {
		m.log.WithFields(fields).WithField("error", err.Error()).Warn("Authorization header check")
		return m.unauthorized(ctx)
	}

	userToken, err := jwtPkg.Verify(accessToken, m.token.secretKey())
	if err != nil {
		m.log.WithFields(fields).WithField("error", err.Error()).Warn("Token verification failed")
		return m.unauthorized(ctx)
	}

	user, err := jwtPkg.UserFromToken(userToken)
	if err != nil {
		m.log.WithFields(fields).WithField("error", err.Error()).Warn("Token claims check")
		return m.unauthorized(ctx)
	}

	ctx.Locals("user", user)

	m.log.WithFields(fields).WithField("user_id", user.ID).Debug("Authentication successful")
	return ctx.Next()
}

// RequireAdmin must run after NewTokenMiddleware.
func (m *middleware) RequireAdmin(ctx *fiber.Ctx) error {
	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return m.unauthorized(ctx)
	}

	if !user.IsAdmin() {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"path":       ctx.Path(),
			"user_id":    user.ID,
		}).Warn("Admin access required")
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin access required",
		})
	}

	return ctx.Next()
}
