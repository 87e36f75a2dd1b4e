package streamHandler

import (
	"ServeTrack/internal/api/stream"
	streamService "ServeTrack/internal/api/stream/service"
	"ServeTrack/internal/middleware"
	jwtPkg "ServeTrack/pkg/jwt"
	"ServeTrack/pkg/log"
	"ServeTrack/pkg/metrics"
	"ServeTrack/pkg/utils"
	"bufio"
	"bytes"
	"image"
	"image/jpeg"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"testing"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

const testSecret = "stream-handler-secret"

type fixture struct {
	app     *fiber.App
	svc     streamService.IStreamService
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, keepAlive time.Duration) *fixture {
	t.Helper()
	logger := log.NewDiscardLogger()
	m := metrics.New()

	svc, err := streamService.NewStreamService(logger, utils.New(), m, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	mw := middleware.New(logger, middleware.WithTokenSecret(testSecret))
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(mw.NewRequestIDMiddleware())
	New(logger, mw, svc, m, keepAlive).Start(app.Group("/api/v1"))

	return &fixture{app: app, svc: svc, metrics: m}
}

// serve runs the app on a loopback listener; streaming responses cannot go
// through app.Test.
func (f *fixture) serve(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() { _ = f.app.Listener(ln) }()
	t.Cleanup(func() {
		f.svc.Close()
		_ = f.app.ShutdownWithTimeout(time.Second)
	})
	return ln.Addr().String()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func readPart(t *testing.T, r *bufio.Reader) []byte {
	t.Helper()
	tp := textproto.NewReader(r)

	line, err := tp.ReadLine()
	if err != nil {
		t.Fatalf("boundary: %v", err)
	}
	if line != "--frame" {
		t.Fatalf("boundary line = %q", line)
	}

	header, err := tp.ReadMIMEHeader()
	if err != nil {
		t.Fatalf("part header: %v", err)
	}
	if ct := header.Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("part content type = %q", ct)
	}
	n, err := strconv.Atoi(header.Get("Content-Length"))
	if err != nil {
		t.Fatalf("content length: %v", err)
	}

	body := make([]byte, n+2)
	if _, err := io.ReadFull(r, body); err != nil {
		t.Fatalf("part body: %v", err)
	}
	return body[:n]
}

func size(t *testing.T, frame []byte) (int, int) {
	t.Helper()
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(frame))
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Width, cfg.Height
}

func TestVideoFeedStartsWithPlaceholderThenFrames(t *testing.T) {
	f := newFixture(t, time.Minute)
	addr := f.serve(t)

	resp, err := http.Get("http://" + addr + "/api/v1/video_feed_processed")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "multipart/x-mixed-replace; boundary=frame" {
		t.Fatalf("content type = %q", ct)
	}

	r := bufio.NewReader(resp.Body)
	if w, h := size(t, readPart(t, r)); w != 640 || h != 480 {
		t.Errorf("first part = %dx%d, want the 640x480 placeholder", w, h)
	}

	if err := f.svc.PushFrame(encodeJPEG(t, 320, 240)); err != nil {
		t.Fatal(err)
	}
	if w, h := size(t, readPart(t, r)); w != 320 || h != 240 {
		t.Errorf("second part = %dx%d, want the pushed frame", w, h)
	}

	// counters move after the flush the client already observed
	deadline := time.Now().Add(time.Second)
	for f.metrics.FramesSent.Load() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if f.metrics.Placeholders.Load() != 1 || f.metrics.FramesSent.Load() != 1 {
		t.Errorf("placeholders=%d sent=%d", f.metrics.Placeholders.Load(), f.metrics.FramesSent.Load())
	}
}

func TestVideoFeedKeepAlive(t *testing.T) {
	f := newFixture(t, 50*time.Millisecond)
	addr := f.serve(t)

	resp, err := http.Get("http://" + addr + "/api/v1/video_feed_processed")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	r := bufio.NewReader(resp.Body)
	readPart(t, r)
	if w, _ := size(t, readPart(t, r)); w != 640 {
		t.Errorf("keep-alive part width = %d", w)
	}
}

func TestInfo(t *testing.T) {
	f := newFixture(t, time.Minute)
	defer f.svc.Close()

	if err := f.svc.PushFrame(encodeJPEG(t, 1920, 1080)); err != nil {
		t.Fatal(err)
	}

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/stream/info", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var info stream.StreamInfoResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if !info.Online || info.Width != 1920 || info.Height != 1080 || info.Frames != 1 {
		t.Errorf("info = %+v", info)
	}
}

func TestIngestRequiresAdminToken(t *testing.T) {
	f := newFixture(t, time.Minute)
	defer f.svc.Close()

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/stream/ws/ingest", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestIngestPushesFrames(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", testSecret)
	tok, _, err := jwtPkg.Sign(map[string]interface{}{
		"id": "detector", "email": "detector@servetrack.local", "username": "detector", "role": "admin",
	}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	f := newFixture(t, time.Minute)
	addr := f.serve(t)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+tok)
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/api/v1/stream/ws/ingest", header)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, encodeJPEG(t, 64, 48)); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for f.svc.Info().Frames == 0 {
		if time.Now().After(deadline) {
			t.Fatal("frame never ingested")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if info := f.svc.Info(); info.Width != 64 || info.Height != 48 {
		t.Errorf("info = %+v", info)
	}
	if f.svc.Info().LastFrameAt == nil {
		t.Error("last frame time not recorded")
	}
}
