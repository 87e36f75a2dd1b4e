package stream

import "time"

type StreamInfoResponse struct {
	Online      bool       `json:"online"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Frames      uint64     `json:"frames"`
	Clients     int        `json:"clients"`
	LastFrameAt *time.Time `json:"last_frame_at,omitempty"`
}
