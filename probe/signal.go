package probe

import (
	"image"
	"image/draw"

	"github.com/rpdg/trayloc/screen"
)

// Signal block inside the icon image.
var signalRect = image.Rect(12, 14, 16, 17)

const colorRange = 32

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// signalColor picks a color close to the sampled background, or a
// near-white one without a sample.
func (p *Prober) signalColor(near *screen.Color) screen.Color {
	if near != nil {
		return screen.Color{
			R: clamp(int(near.R) + p.rng.Intn(colorRange) - 8),
			G: clamp(int(near.G) + p.rng.Intn(colorRange) - 8),
			B: clamp(int(near.B) + p.rng.Intn(colorRange) - 8),
		}
	}
	return screen.Color{
		R: clamp(255 - p.rng.Intn(colorRange)),
		G: clamp(255 - p.rng.Intn(colorRange)),
		B: clamp(255 - p.rng.Intn(colorRange)),
	}
}

// paintSignal returns a copy of src with the signal block filled with c.
func paintSignal(src image.Image, c screen.Color) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	draw.Draw(dst, signalRect.Intersect(dst.Bounds()), image.NewUniform(c.RGBA()), image.Point{}, draw.Src)
	return dst
}

// variants returns the eight colors the signal may read back as after the
// shell blends it, with channels lowered by at most one.
func variants(c screen.Color) [8]screen.Color {
	var out [8]screen.Color
	for k := range out {
		m1, m2 := 0, -1
		if k >= 4 {
			m1, m2 = -1, 0
		}
		r, g, b := int(c.R)+m1, int(c.G)+m1, int(c.B)+m1
		switch k % 4 {
		case 1:
			b = int(c.B) + m2
		case 2:
			g = int(c.G) + m2
		case 3:
			g, b = int(c.G)+m2, int(c.B)+m2
		}
		out[k] = screen.Color{R: clamp(r), G: clamp(g), B: clamp(b)}
	}
	return out
}

// findSignal returns the position of the first pixel of a horizontal pair
// that both show the same variant of c, trying variants in order.
func findSignal(img image.Image, c screen.Color) (image.Point, bool) {
	w := img.Bounds().Dx()
	if w < 2 {
		return image.Point{}, false
	}
	px := screen.Pixels(img)
	for _, v := range variants(c) {
		for i := 0; i+1 < len(px); i++ {
			if i%w == w-1 {
				continue
			}
			if px[i] == v && px[i+1] == v {
				return image.Pt(i%w, i/w), true
			}
		}
	}
	return image.Point{}, false
}
