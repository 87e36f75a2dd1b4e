package editor

import "fmt"

// Camera is an entry of the camera selection list.
type Camera struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StreamURL string `json:"stream_url,omitempty"`
}

// Point is a vertex in native stream pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MinPolygonPoints is the smallest vertex count of a configured region.
const MinPolygonPoints = 3

// Polygon is an ordered vertex list; order defines edge connectivity.
type Polygon []Point

// Valid reports whether p is either empty or a closed region.
func (p Polygon) Valid() bool {
	return len(p) == 0 || len(p) >= MinPolygonPoints
}

func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

func (p Polygon) Equal(other Polygon) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Size is the intrinsic resolution of a decoded frame.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) Known() bool { return s.Width > 0 && s.Height > 0 }

// Rect is the on-screen bounding box of the stream surface in CSS pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Scale converts rendered pixels into native pixels.
type Scale struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Surface pairs the native resolution of the stream with its rendered box.
type Surface struct {
	Natural  Size `json:"natural"`
	Rendered Rect `json:"rendered"`
}

// PointerEvent is a click location in on-screen CSS pixels.
type PointerEvent struct {
	ClientX float64 `json:"client_x"`
	ClientY float64 `json:"client_y"`
}

type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	for _, v := range []Mode{ModeIdle, ModeDrawing} {
		if v.String() == string(text) {
			*m = v
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", text)
}

type StreamState int

const (
	StreamLoading StreamState = iota
	StreamActive
	StreamErrored
)

func (s StreamState) String() string {
	switch s {
	case StreamLoading:
		return "loading"
	case StreamActive:
		return "active"
	case StreamErrored:
		return "errored"
	default:
		return "unknown"
	}
}

func (s StreamState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *StreamState) UnmarshalText(text []byte) error {
	for _, v := range []StreamState{StreamLoading, StreamActive, StreamErrored} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown streamstate %q", text)
}

type Severity int

const (
	SeverityNone Severity = iota
	SeverityInfo
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return ""
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(text []byte) error {
	for _, v := range []Severity{SeverityNone, SeverityInfo, SeveritySuccess, SeverityError} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", text)
}

// Status is the message shown above the editor.
type Status struct {
	Severity Severity `json:"type"`
	Text     string   `json:"text"`
}

func (s Status) String() string {
	if s.Severity == SeverityNone {
		return ""
	}
	return fmt.Sprintf("%s: %s", s.Severity, s.Text)
}

// LoadResult tells an absent region apart from a failed fetch.
type LoadResult int

const (
	LoadPending LoadResult = iota
	LoadNotConfigured
	LoadConfigured
	LoadFailed
)

func (l LoadResult) String() string {
	switch l {
	case LoadPending:
		return "pending"
	case LoadNotConfigured:
		return "not_configured"
	case LoadConfigured:
		return "configured"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (l LoadResult) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *LoadResult) UnmarshalText(text []byte) error {
	for _, v := range []LoadResult{LoadPending, LoadNotConfigured, LoadConfigured, LoadFailed} {
		if v.String() == string(text) {
			*l = v
			return nil
		}
	}
	return fmt.Errorf("unknown loadresult %q", text)
}

const (
	MsgDrawingHint      = "Click on the camera stream to add polygon points. Need at least 3 points."
	MsgTooFewPoints     = "ROI must have at least 3 points"
	MsgSaving           = "Saving ROI..."
	MsgDeleting         = "Deleting ROI..."
	MsgSaved            = "ROI saved successfully!"
	MsgDeleted          = "ROI deleted successfully!"
	MsgSaveFailed       = "Failed to save ROI"
	MsgDeleteFailed     = "Failed to delete ROI"
	MsgLoadFailed       = "Failed to load ROI"
	MsgCamerasFailed    = "Failed to load cameras"
	MsgCameraNotFound   = "Camera not found"
	MsgConfirmDeleteROI = "Are you sure you want to delete the ROI for this camera?"
)
