package streamService

import (
	"ServeTrack/internal/api/stream"
	"ServeTrack/pkg/log"
	"ServeTrack/pkg/metrics"
	"ServeTrack/pkg/utils"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"
)

func jpegFrame(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestService(t *testing.T) (*streamService, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	svc, err := NewStreamService(log.NewDiscardLogger(), utils.New(), m, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Close)
	return svc.(*streamService), m
}

func TestPlaceholderIs640x480(t *testing.T) {
	svc, _ := newTestService(t)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(svc.Placeholder()))
	if err != nil {
		t.Fatal(err)
	}
	if format != "jpeg" || cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("placeholder = %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestPushFrameFansOut(t *testing.T) {
	svc, m := newTestService(t)

	idA, a := svc.Subscribe()
	_, b := svc.Subscribe()
	defer svc.Unsubscribe(idA)

	frame := jpegFrame(t, 320, 240)
	if err := svc.PushFrame(frame); err != nil {
		t.Fatalf("PushFrame: %v", err)
	}

	for _, ch := range []<-chan []byte{a, b} {
		select {
		case got := <-ch:
			if !bytes.Equal(got, frame) {
				t.Error("subscriber got a different frame")
			}
		case <-time.After(time.Second):
			t.Fatal("frame not delivered")
		}
	}

	info := svc.Info()
	if !info.Online || info.Width != 320 || info.Height != 240 || info.Frames != 1 || info.Clients != 2 {
		t.Errorf("info = %+v", info)
	}
	if m.FramesIngested.Load() != 1 {
		t.Errorf("ingested = %d", m.FramesIngested.Load())
	}
}

func TestPushFrameRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.PushFrame(nil); !errors.Is(err, stream.ErrEmptyFrame) {
		t.Errorf("nil frame err = %v", err)
	}
	if err := svc.PushFrame([]byte("definitely not a jpeg")); !errors.Is(err, stream.ErrInvalidFrame) {
		t.Errorf("garbage frame err = %v", err)
	}
	if info := svc.Info(); info.Online || info.Frames != 0 {
		t.Errorf("info after rejects = %+v", info)
	}
}

func TestSlowClientDropsFrames(t *testing.T) {
	svc, m := newTestService(t)
	_, ch := svc.Subscribe()

	frame := jpegFrame(t, 16, 16)
	for i := 0; i < clientBuffer+3; i++ {
		if err := svc.PushFrame(frame); err != nil {
			t.Fatal(err)
		}
	}

	if len(ch) != clientBuffer {
		t.Errorf("buffered = %d", len(ch))
	}
	if m.FramesDropped.Load() != 3 {
		t.Errorf("dropped = %d, want 3", m.FramesDropped.Load())
	}
}

func TestLateSubscriberGetsLatestFrame(t *testing.T) {
	svc, _ := newTestService(t)
	frame := jpegFrame(t, 8, 8)
	if err := svc.PushFrame(frame); err != nil {
		t.Fatal(err)
	}

	_, ch := svc.Subscribe()
	select {
	case got := <-ch:
		if !bytes.Equal(got, frame) {
			t.Error("unexpected frame")
		}
	default:
		t.Fatal("late subscriber did not get the latest frame")
	}
}

func TestStaleStreamIsOffline(t *testing.T) {
	svc, _ := newTestService(t)
	now := time.Now()
	svc.now = func() time.Time { return now }

	if err := svc.PushFrame(jpegFrame(t, 8, 8)); err != nil {
		t.Fatal(err)
	}
	svc.now = func() time.Time { return now.Add(2 * time.Minute) }

	if info := svc.Info(); info.Online {
		t.Errorf("stale stream reported online: %+v", info)
	}
}

func TestCloseEndsSubscriptions(t *testing.T) {
	svc, m := newTestService(t)
	_, ch := svc.Subscribe()

	svc.Close()
	if _, ok := <-ch; ok {
		t.Error("channel open after Close")
	}
	if m.StreamClients.Load() != 0 {
		t.Errorf("clients gauge = %d", m.StreamClients.Load())
	}
	if err := svc.PushFrame(jpegFrame(t, 8, 8)); err != nil {
		t.Errorf("push after close = %v", err)
	}
}
