package camera

import "ServeTrack/pkg/response"

var (
	ErrListCameras = response.NewError(500, "Failed to load cameras")
)
