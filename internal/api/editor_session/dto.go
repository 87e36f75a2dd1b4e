package editorsession

import "ServeTrack/internal/editor"

const (
	MsgLoadCameras   = "load_cameras"
	MsgSelectCamera  = "select_camera"
	MsgStartDrawing  = "start_drawing"
	MsgPointer       = "pointer"
	MsgUndo          = "undo"
	MsgSave          = "save"
	MsgCancel        = "cancel"
	MsgRequestDelete = "request_delete"
	MsgConfirmDelete = "confirm_delete"
	MsgReloadROI     = "reload_roi"
	MsgStreamLoaded  = "stream_loaded"
	MsgStreamResized = "stream_resized"
	MsgStreamError   = "stream_error"
	MsgStreamRetry   = "stream_retry"
)

// ClientMessage is one browser event. Only the fields its type needs are set.
type ClientMessage struct {
	Type     string       `json:"type"`
	CameraID int64        `json:"camera_id,omitempty"`
	ClientX  float64      `json:"client_x,omitempty"`
	ClientY  float64      `json:"client_y,omitempty"`
	Confirm  bool         `json:"confirm,omitempty"`
	Natural  *editor.Size `json:"natural,omitempty"`
	Rendered *editor.Rect `json:"rendered,omitempty"`
}

const (
	ServerView  = "view"
	ServerError = "error"
)

type ServerMessage struct {
	Type    string       `json:"type"`
	Session string       `json:"session,omitempty"`
	View    *editor.View `json:"view,omitempty"`
	Error   string       `json:"error,omitempty"`
}
