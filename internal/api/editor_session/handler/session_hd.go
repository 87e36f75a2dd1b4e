package sessionHandler

import (
	"ServeTrack/internal/api/editor_session"
	"ServeTrack/internal/editor"
	"ServeTrack/pkg/response"
	"time"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const (
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
	maxMessage   = 64 * 1024
)

func (h *SessionHandler) handleSession(c *websocket.Conn) {
	token, _ := c.Locals(tokenLocal).(string)

	session, err := h.sessionService.Open(token)
	if err != nil {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session unavailable"),
			time.Now().Add(writeTimeout))
		return
	}
	defer session.Close()

	logger := h.log.WithField("session", session.ID)

	// Views coalesce: the writer always sends the latest snapshot.
	changed := make(chan struct{}, 1)
	session.Editor.AddListener(func(editor.View) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	rejects := make(chan string, 8)
	closed := make(chan struct{})
	c.SetReadLimit(maxMessage)

	go func() {
		defer close(closed)
		for {
			_, data, err := c.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Errorf("Editor session read error: %v", err)
				}
				return
			}

			var msg editorsession.ClientMessage
			if err := jsoniter.Unmarshal(data, &msg); err != nil {
				h.reject(rejects, editorsession.ErrMalformedMessage)
				continue
			}

			if err := session.Dispatch(msg); err != nil {
				logger.WithFields(logrus.Fields{
					"type":  msg.Type,
					"error": err.Error(),
				}).Debug("Rejected editor message")
				h.reject(rejects, err)
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	if err := h.write(c, editorsession.ServerMessage{Type: editorsession.ServerView, Session: session.ID, View: viewPtr(session.Editor.Snapshot())}); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-changed:
			msg := editorsession.ServerMessage{Type: editorsession.ServerView, Session: session.ID, View: viewPtr(session.Editor.Snapshot())}
			if err := h.write(c, msg); err != nil {
				logger.Errorf("Error writing editor view: %v", err)
				return
			}
		case text := <-rejects:
			if err := h.write(c, editorsession.ServerMessage{Type: editorsession.ServerError, Session: session.ID, Error: text}); err != nil {
				return
			}
		case <-ping.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}

func (h *SessionHandler) reject(rejects chan<- string, err error) {
	text, ok := response.Message(err)
	if !ok {
		text = err.Error()
	}
	select {
	case rejects <- text:
	default:
	}
}

func (h *SessionHandler) write(c *websocket.Conn, msg editorsession.ServerMessage) error {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return err
	}
	if err := c.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}

func viewPtr(v editor.View) *editor.View {
	return &v
}
