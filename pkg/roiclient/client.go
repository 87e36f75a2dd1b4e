package roiclient

import (
	"ServeTrack/internal/editor"
	"ServeTrack/pkg/response"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 10 * time.Second

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type cameraList struct {
	Success bool `json:"success"`
	Cameras []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"cameras"`
}

type roiBody struct {
	ROICoordinates []point `json:"roi_coordinates"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client talks to the ROI REST API on behalf of one editor session.
type Client struct {
	log     *logrus.Logger
	http    *fiber.Client
	baseURL string
	token   string
	timeout time.Duration
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func New(log *logrus.Logger, baseURL string, opts ...Option) *Client {
	c := &Client{
		log: log,
		http: &fiber.Client{
			UserAgent:   "servetrack-roi-editor",
			JSONEncoder: jsoniter.Marshal,
			JSONDecoder: jsoniter.Unmarshal,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ editor.Store = (*Client)(nil)

func (c *Client) ListCameras(ctx context.Context) ([]editor.Camera, error) {
	var body cameraList
	if err := c.do(ctx, fiber.MethodGet, "/api/v1/cameras", nil, &body); err != nil {
		return nil, err
	}

	cameras := make([]editor.Camera, 0, len(body.Cameras))
	for _, cam := range body.Cameras {
		cameras = append(cameras, editor.Camera{ID: cam.ID, Name: cam.Name})
	}
	return cameras, nil
}

func (c *Client) LoadROI(ctx context.Context, cameraID int64) (editor.Polygon, error) {
	var body roiBody
	if err := c.do(ctx, fiber.MethodGet, roiPath(cameraID), nil, &body); err != nil {
		return nil, err
	}
	return toPolygon(body.ROICoordinates), nil
}

func (c *Client) SaveROI(ctx context.Context, cameraID int64, polygon editor.Polygon) (editor.Polygon, error) {
	req := roiBody{ROICoordinates: make([]point, 0, len(polygon))}
	for _, p := range polygon {
		req.ROICoordinates = append(req.ROICoordinates, point{X: p.X, Y: p.Y})
	}

	var body roiBody
	if err := c.do(ctx, fiber.MethodPost, roiPath(cameraID), req, &body); err != nil {
		return nil, err
	}
	return toPolygon(body.ROICoordinates), nil
}

func (c *Client) DeleteROI(ctx context.Context, cameraID int64) error {
	return c.do(ctx, fiber.MethodDelete, roiPath(cameraID), nil, nil)
}

func roiPath(cameraID int64) string {
	return fmt.Sprintf("/api/v1/roi/%d", cameraID)
}

func toPolygon(points []point) editor.Polygon {
	if len(points) == 0 {
		return nil
	}
	polygon := make(editor.Polygon, 0, len(points))
	for _, p := range points {
		polygon = append(polygon, editor.Point{X: p.X, Y: p.Y})
	}
	return polygon
}

// do runs one request. The agent cannot be cancelled mid-flight, so the
// context deadline is folded into the request timeout instead.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	var agent *fiber.Agent
	switch method {
	case fiber.MethodPost:
		agent = c.http.Post(c.baseURL + path)
	case fiber.MethodDelete:
		agent = c.http.Delete(c.baseURL + path)
	default:
		agent = c.http.Get(c.baseURL + path)
	}

	agent.Timeout(timeout).Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	if in != nil {
		agent.JSON(in)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		}).Warn("ROI API request failed")
		return err
	}

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return decodeError(code, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := jsoniter.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeError keeps the server's message so the editor can show it verbatim.
func decodeError(code int, body []byte) error {
	var e errorBody
	if err := jsoniter.Unmarshal(body, &e); err == nil {
		if e.Error != "" {
			return response.NewError(code, e.Error)
		}
		if e.Message != "" {
			return response.NewError(code, e.Message)
		}
	}
	return fmt.Errorf("roi api: unexpected status %d", code)
}
