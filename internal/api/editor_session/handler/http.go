package sessionHandler

import (
	sessionService "ServeTrack/internal/api/editor_session/service"
	"ServeTrack/internal/middleware"
	jwtPkg "ServeTrack/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

const tokenLocal = "access_token"

type SessionHandler struct {
	log            *logrus.Logger
	middleware     middleware.Middleware
	sessionService sessionService.ISessionService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	ss sessionService.ISessionService,
) *SessionHandler {
	return &SessionHandler{
		log:            log,
		middleware:     middleware,
		sessionService: ss,
	}
}

func (h *SessionHandler) Start(srv fiber.Router) {
	srv.Get("/roi/editor/ws",
		h.middleware.NewTokenMiddleware,
		h.middleware.RequireAdmin,
		h.upgrade,
		websocket.New(h.handleSession),
	)
}

// upgrade keeps the verified token so the session can call the REST API as
// the same user.
func (h *SessionHandler) upgrade(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	token, err := jwtPkg.TokenFromRequest(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	ctx.Locals(tokenLocal, token)
	return ctx.Next()
}
