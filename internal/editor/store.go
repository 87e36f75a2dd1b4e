package editor

import "context"

// Store is the backend the editor reads cameras from and persists regions to.
//
// LoadROI returns an empty polygon and a nil error when the camera has no
// region configured. SaveROI returns the polygon as accepted by the backend.
// Errors that carry a user-facing message should be *response.Error.
type Store interface {
	ListCameras(ctx context.Context) ([]Camera, error)
	LoadROI(ctx context.Context, cameraID int64) (Polygon, error)
	SaveROI(ctx context.Context, cameraID int64, polygon Polygon) (Polygon, error)
	DeleteROI(ctx context.Context, cameraID int64) error
}
