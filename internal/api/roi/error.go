package roi

import "ServeTrack/pkg/response"

var (
	ErrCameraNotFound   = response.NewError(404, "Camera not found")
	ErrROINotConfigured = response.NewError(404, "No ROI configured for this camera")
	ErrAccessDenied     = response.NewError(403, "Access denied")
	ErrAdminRequired    = response.NewError(403, "Admin access required")
	ErrInvalidROI       = response.NewError(400, "Invalid ROI coordinates")
	ErrInvalidCameraID  = response.NewError(400, "Invalid camera id")
	ErrSaveROI          = response.NewError(500, "Failed to save ROI")
	ErrDeleteROI        = response.NewError(500, "Failed to delete ROI")
)
