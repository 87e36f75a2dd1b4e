package roiHandler

import (
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	feedPingInterval = 30 * time.Second
	feedWriteTimeout = 10 * time.Second
)

func (h *ROIHandler) handleFeed(c *websocket.Conn) {
	id, changes := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	h.log.WithField("subscriber", id).Info("ROI feed client connected")
	defer h.log.WithField("subscriber", id).Info("ROI feed client disconnected")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(feedPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if err := c.SetWriteDeadline(time.Now().Add(feedWriteTimeout)); err != nil {
				return
			}
			if err := c.WriteJSON(change); err != nil {
				h.log.WithField("subscriber", id).Errorf("Error writing ROI change: %v", err)
				return
			}
		case <-ping.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(feedWriteTimeout)); err != nil {
				return
			}
		}
	}
}
