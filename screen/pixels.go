package screen

import (
	"image"
	"image/color"
)

// Color is an opaque RGB value as read back from the screen.
type Color struct {
	R, G, B uint8
}

func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ColorAt returns the opaque color of img at (x, y) relative to its bounds.
func ColorAt(img image.Image, x, y int) Color {
	b := img.Bounds()
	r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
}

// Pixels flattens img into a row-major slice. Index i maps back to
// (i % width, i / width).
func Pixels(img image.Image) []Color {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]Color, w*h)

	// Fast path for captures, which are always *image.RGBA.
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < h; y++ {
			row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
			for x := 0; x < w; x++ {
				out[y*w+x] = Color{R: row[x*4], G: row[x*4+1], B: row[x*4+2]}
			}
		}
		return out
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = ColorAt(img, x, y)
		}
	}
	return out
}
