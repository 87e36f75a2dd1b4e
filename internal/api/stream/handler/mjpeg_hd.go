package streamHandler

import (
	"ServeTrack/pkg/handlerUtil"
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const boundary = "frame"

func writePart(w *bufio.Writer, frame []byte) error {
	if _, err := fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", boundary, len(frame)); err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return err
	}
	if _, err := w.WriteString("\r\n"); err != nil {
		return err
	}
	return w.Flush()
}

// VideoFeed streams the processed frames as multipart MJPEG. The placeholder
// goes out on connect and whenever the detector stays quiet for keepAlive.
func (h *StreamHandler) VideoFeed(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	id, frames := h.streamService.Subscribe()

	ctx.Set(fiber.HeaderContentType, "multipart/x-mixed-replace; boundary="+boundary)
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set("Pragma", "no-cache")
	ctx.Set("X-Accel-Buffering", "no")

	logger := h.log.WithFields(logrus.Fields{"request_id": requestID, "client": id})
	logger.Info("MJPEG client connected")

	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer h.streamService.Unsubscribe(id)
		defer logger.Info("MJPEG client disconnected")

		ticker := time.NewTicker(h.keepAlive)
		defer ticker.Stop()

		var last time.Time
		if len(frames) == 0 {
			if err := writePart(w, h.streamService.Placeholder()); err != nil {
				return
			}
			h.metrics.Placeholders.Add(1)
			last = time.Now()
		}

		for {
			select {
			case frame, ok := <-frames:
				if !ok {
					return
				}
				if err := writePart(w, frame); err != nil {
					return
				}
				h.metrics.FramesSent.Add(1)
				last = time.Now()
			case now := <-ticker.C:
				if now.Sub(last) < h.keepAlive {
					continue
				}
				if err := writePart(w, h.streamService.Placeholder()); err != nil {
					return
				}
				h.metrics.Placeholders.Add(1)
				last = now
			}
		}
	})

	return nil
}

func (h *StreamHandler) Info(ctx *fiber.Ctx) error {
	return handlerUtil.New(h.log).HandleSuccess(ctx, fiber.StatusOK, h.streamService.Info())
}
