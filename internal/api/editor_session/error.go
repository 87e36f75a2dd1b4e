package editorsession

import "ServeTrack/pkg/response"

var (
	ErrMalformedMessage = response.NewError(400, "malformed message")
	ErrUnknownMessage   = response.NewError(400, "unknown message type")
	ErrMissingCamera    = response.NewError(400, "camera_id is required")
	ErrMissingSurface   = response.NewError(400, "image size is required")
)
