package streamHandler

import (
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

const maxFrameBytes = 8 << 20

func (h *StreamHandler) handleIngest(c *websocket.Conn) {
	c.SetReadLimit(maxFrameBytes)

	remote := c.RemoteAddr().String()
	h.log.WithField("remote", remote).Info("Frame producer connected")
	defer h.log.WithField("remote", remote).Info("Frame producer disconnected")

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WithField("remote", remote).Errorf("Ingest read error: %v", err)
			}
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}

		if err := h.streamService.PushFrame(data); err != nil {
			h.log.WithFields(logrus.Fields{
				"remote": remote,
				"bytes":  len(data),
				"error":  err.Error(),
			}).Warn("Dropped ingested frame")
		}
	}
}
