package streamService

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	placeholderWidth  = 640
	placeholderHeight = 480
	placeholderText   = "Processing..."
)

// renderPlaceholder draws the frame sent while the detector has nothing new.
func renderPlaceholder() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 17, G: 24, B: 39, A: 255}}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 16, G: 185, B: 129, A: 255}),
		Face: face,
	}
	width := d.MeasureString(placeholderText)
	d.Dot = fixed.Point26_6{
		X: (fixed.I(placeholderWidth) - width) / 2,
		Y: fixed.I((placeholderHeight + face.Metrics().Ascent.Ceil()) / 2),
	}
	d.DrawString(placeholderText)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
