//go:build !windows

package screen

import "image"

func CaptureRect(r Rect) (*image.RGBA, error) {
	if r.Empty() {
		return nil, ErrEmptyRect
	}
	return nil, ErrUnsupported
}

func WorkArea(r Rect) (Rect, bool) { return Rect{}, false }

func ForegroundIsFullScreen() bool { return false }
