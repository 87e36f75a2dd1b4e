package editor

import "math"

// Scale returns native/rendered per axis. ok is false until the stream has
// reported its natural size and occupies a non-empty box.
func (s Surface) Scale() (Scale, bool) {
	if !s.Natural.Known() || s.Rendered.Width <= 0 || s.Rendered.Height <= 0 {
		return Scale{}, false
	}
	return Scale{
		X: float64(s.Natural.Width) / s.Rendered.Width,
		Y: float64(s.Natural.Height) / s.Rendered.Height,
	}, true
}

// MapPointer converts a click in CSS pixels into native stream pixels.
// It reports false while the surface has no usable scale or when the click
// falls outside the rendered box.
func MapPointer(clientX, clientY float64, s Surface) (Point, bool) {
	scale, ok := s.Scale()
	if !ok {
		return Point{}, false
	}
	return mapPoint(clientX, clientY, s, scale)
}

func mapPoint(clientX, clientY float64, s Surface, scale Scale) (Point, bool) {
	dx := clientX - s.Rendered.Left
	dy := clientY - s.Rendered.Top
	if dx < 0 || dy < 0 || dx >= s.Rendered.Width || dy >= s.Rendered.Height {
		return Point{}, false
	}
	// rounding near the far edge can land on Natural itself
	return Point{
		X: min(roundHalfUp(dx*scale.X), s.Natural.Width-1),
		Y: min(roundHalfUp(dy*scale.Y), s.Natural.Height-1),
	}, true
}

// ToDisplay is the inverse of MapPointer without the box offset.
func ToDisplay(p Point, scale Scale) (float64, float64) {
	if scale.X == 0 || scale.Y == 0 {
		return float64(p.X), float64(p.Y)
	}
	return float64(p.X) / scale.X, float64(p.Y) / scale.Y
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
