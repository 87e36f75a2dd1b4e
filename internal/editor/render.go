package editor

import "strconv"

type DrawOp string

const (
	OpClear   DrawOp = "clear"
	OpPolygon DrawOp = "polygon"
	OpMarker  DrawOp = "marker"
)

const (
	StrokeColor    = "#10b981"
	FillColor      = "rgba(16, 185, 129, 0.15)"
	MarkerColor    = "#10b981"
	LabelColor     = "#ffffff"
	LabelOutline   = "#000000"
	LabelFont      = "bold 14px Arial"
	StrokeWidth    = 3.0
	MarkerRadius   = 6.0
	LabelOffsetX   = 12.0
	LabelOffsetY   = -8.0
	LabelLineWidth = 3.0
)

// DisplayPoint is a position on the CSS-sized overlay.
type DisplayPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DrawCommand is one paint instruction for the overlay canvas.
type DrawCommand struct {
	Op        DrawOp         `json:"op"`
	Points    []DisplayPoint `json:"points,omitempty"`
	Closed    bool           `json:"closed,omitempty"`
	Stroke    string         `json:"stroke,omitempty"`
	Fill      string         `json:"fill,omitempty"`
	LineWidth float64        `json:"line_width,omitempty"`
	Center    *DisplayPoint  `json:"center,omitempty"`
	Radius    float64        `json:"radius,omitempty"`
	Label     string         `json:"label,omitempty"`
	LabelAt   *DisplayPoint  `json:"label_at,omitempty"`
	Font      string         `json:"font,omitempty"`
}

// Render turns a polygon into overlay paint commands in display space.
// It is pure: equal inputs always yield equal output.
func Render(p Polygon, scale Scale) []DrawCommand {
	cmds := make([]DrawCommand, 0, len(p)+2)
	cmds = append(cmds, DrawCommand{Op: OpClear})
	if len(p) == 0 {
		return cmds
	}

	outline := make([]DisplayPoint, len(p))
	for i, pt := range p {
		x, y := ToDisplay(pt, scale)
		outline[i] = DisplayPoint{X: x, Y: y}
	}

	cmds = append(cmds, DrawCommand{
		Op:        OpPolygon,
		Points:    outline,
		Closed:    true,
		Stroke:    StrokeColor,
		Fill:      FillColor,
		LineWidth: StrokeWidth,
	})

	for i, at := range outline {
		center := at
		label := DisplayPoint{X: at.X + LabelOffsetX, Y: at.Y + LabelOffsetY}
		cmds = append(cmds, DrawCommand{
			Op:        OpMarker,
			Center:    &center,
			Radius:    MarkerRadius,
			Fill:      MarkerColor,
			Label:     strconv.Itoa(i + 1),
			LabelAt:   &label,
			Font:      LabelFont,
			Stroke:    LabelOutline,
			LineWidth: LabelLineWidth,
		})
	}

	return cmds
}
