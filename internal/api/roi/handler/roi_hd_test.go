package roiHandler

import (
	"ServeTrack/internal/api/roi"
	"ServeTrack/internal/api/roi/feed"
	"ServeTrack/internal/entity"
	"ServeTrack/internal/middleware"
	jwtPkg "ServeTrack/pkg/jwt"
	"ServeTrack/pkg/log"
	"ServeTrack/pkg/metrics"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const testSecret = "roi-handler-secret"

type stubService struct {
	saved   []roi.SaveROIRequest
	getErr  error
	saveErr error
}

func (s *stubService) GetROI(ctx context.Context, user entity.UserLoginData, cameraID int64) (*roi.ROIResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &roi.ROIResponse{CameraID: cameraID, CameraName: "Entrance"}, nil
}

func (s *stubService) SaveROI(ctx context.Context, user entity.UserLoginData, cameraID int64, req roi.SaveROIRequest) (*roi.SaveROIResponse, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.saved = append(s.saved, req)
	return &roi.SaveROIResponse{Message: "ROI saved successfully", CameraID: cameraID, ROICoordinates: req.ROICoordinates}, nil
}

func (s *stubService) DeleteROI(ctx context.Context, user entity.UserLoginData, cameraID int64) (*roi.DeleteROIResponse, error) {
	return nil, roi.ErrROINotConfigured
}

func token(t *testing.T, role string) string {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", testSecret)
	tok, _, err := jwtPkg.Sign(map[string]interface{}{
		"id": "u-1", "email": "ops@servetrack.local", "username": "ops", "role": role,
	}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func newApp(svc *stubService) *fiber.App {
	logger := log.NewDiscardLogger()
	mw := middleware.New(logger, middleware.WithTokenSecret(testSecret))
	h := New(logger, validator.New(), mw, svc, feed.NewHub(logger, metrics.New()))

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	h.Start(app.Group("/api/v1"))
	return app
}

func do(t *testing.T, app *fiber.App, method, target, tok, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestGetROIHandler(t *testing.T) {
	svc := &stubService{}
	app := newApp(svc)
	client := token(t, entity.RoleClient)

	status, body := do(t, app, "GET", "/api/v1/roi/7", client, "")
	if status != fiber.StatusOK || !strings.Contains(body, `"camera_id":7`) || !strings.Contains(body, `"roi_coordinates":null`) {
		t.Errorf("got %d %s", status, body)
	}

	status, _ = do(t, app, "GET", "/api/v1/roi/7", "", "")
	if status != fiber.StatusUnauthorized {
		t.Errorf("anonymous status = %d", status)
	}

	status, body = do(t, app, "GET", "/api/v1/roi/abc", client, "")
	if status != fiber.StatusBadRequest || !strings.Contains(body, "Invalid camera id") {
		t.Errorf("bad id got %d %s", status, body)
	}

	svc.getErr = roi.ErrAccessDenied
	status, body = do(t, app, "GET", "/api/v1/roi/7", client, "")
	if status != fiber.StatusForbidden || body != `{"error":"Access denied"}` {
		t.Errorf("denied got %d %s", status, body)
	}
}

func TestSaveROIHandler(t *testing.T) {
	svc := &stubService{}
	app := newApp(svc)
	admin := token(t, entity.RoleAdmin)
	client := token(t, entity.RoleClient)

	valid := `{"roi_coordinates":[{"x":10,"y":10},{"x":90,"y":10},{"x":90,"y":60},{"x":10,"y":60}]}`

	status, body := do(t, app, "POST", "/api/v1/roi/1", admin, valid)
	if status != fiber.StatusOK || !strings.Contains(body, `"message":"ROI saved successfully"`) {
		t.Fatalf("got %d %s", status, body)
	}
	if len(svc.saved) != 1 || len(svc.saved[0].ROICoordinates) != 4 {
		t.Errorf("saved = %+v", svc.saved)
	}

	status, _ = do(t, app, "POST", "/api/v1/roi/1", client, valid)
	if status != fiber.StatusForbidden {
		t.Errorf("client save status = %d", status)
	}

	invalid := []string{
		`{"roi_coordinates":[{"x":1,"y":1},{"x":2,"y":2}]}`,
		`{"roi_coordinates":[{"x":-1,"y":1},{"x":2,"y":2},{"x":3,"y":3}]}`,
		`{"roi_coordinates":null}`,
		`not json`,
	}
	for _, b := range invalid {
		status, body := do(t, app, "POST", "/api/v1/roi/1", admin, b)
		if status != fiber.StatusBadRequest || body != `{"error":"Invalid ROI coordinates"}` {
			t.Errorf("body %s: got %d %s", b, status, body)
		}
	}
	if len(svc.saved) != 1 {
		t.Errorf("invalid bodies reached the service: %d", len(svc.saved))
	}
}

func TestDeleteROIHandlerSurfacesNotConfigured(t *testing.T) {
	app := newApp(&stubService{})

	status, body := do(t, app, "DELETE", "/api/v1/roi/3", token(t, entity.RoleAdmin), "")
	if status != fiber.StatusNotFound || !strings.Contains(body, "No ROI configured") {
		t.Errorf("got %d %s", status, body)
	}
}

func TestFeedRequiresUpgrade(t *testing.T) {
	app := newApp(&stubService{})

	status, _ := do(t, app, "GET", "/api/v1/roi/feed/ws", token(t, entity.RoleClient), "")
	if status != fiber.StatusUpgradeRequired {
		t.Errorf("plain GET on feed = %d, want 426", status)
	}
}
