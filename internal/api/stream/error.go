package stream

import "ServeTrack/pkg/response"

var (
	ErrEmptyFrame   = response.NewError(400, "empty frame")
	ErrInvalidFrame = response.NewError(400, "frame is not a decodable image")
)
