package main

import (
	"image"
	"image/color"
	"image/draw"
)

// solidIcon draws a filled square with a one pixel transparent margin.
func solidIcon(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds().Inset(1), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
