// Package placement computes where a popup window belongs next to a
// notification-area icon.
package placement

import (
	"github.com/rpdg/trayloc/screen"
	"github.com/rpdg/trayloc/taskbar"
)

// EdgeOffset is the gap, in 96-DPI pixels, between a popup and the taskbar
// or screen edge.
const EdgeOffset = 8

// Request describes one placement.
type Request struct {
	// Icon is the icon rectangle; empty when it could not be located.
	Icon    screen.Rect
	Taskbar taskbar.Descriptor
	// OverflowButton is the "show hidden icons" button.
	OverflowButton screen.Rect
	// WorkArea is the monitor work area around the icon. Empty skips clamping.
	WorkArea screen.Rect

	Width, Height int32
	// Scale is the DPI scale factor; 0 means 1.
	Scale float64
	// Pinned popups for fly-out icons are anchored to the overflow button.
	Pinned bool
}

// Anchor returns icon, or the corner of the taskbar where the notification
// area usually sits when icon is empty.
func Anchor(icon screen.Rect, tb taskbar.Descriptor) screen.Rect {
	if !icon.Empty() {
		return icon
	}
	r := tb.Rect
	switch tb.Edge {
	case taskbar.EdgeTop:
		return screen.RectFromSize(r.Right-1, r.Top, 1, 1)
	case taskbar.EdgeLeft:
		return screen.RectFromSize(r.Left, r.Bottom-1, 1, 1)
	}
	return screen.RectFromSize(r.Right-1, r.Bottom-1, 1, 1)
}

// Position returns the top-left corner for the popup.
func Position(req Request) screen.Point {
	scale := req.Scale
	if scale <= 0 {
		scale = 1
	}
	off := EdgeOffset * scale
	w, h := float64(req.Width), float64(req.Height)
	tb := req.Taskbar.Rect

	anchor := Anchor(req.Icon, req.Taskbar)
	inFlyout := !tb.Empty() && anchor.Outside(tb)
	if inFlyout && req.Pinned && !req.OverflowButton.Empty() {
		anchor = req.OverflowButton
	}
	cx := float64(anchor.Left + anchor.Width()/2)
	cy := float64(anchor.Top + anchor.Height()/2)

	var left, top float64
	switch req.Taskbar.Edge {
	case taskbar.EdgeTop:
		left = cx - w/2
		if inFlyout {
			top = float64(anchor.Bottom) + off
		} else {
			top = float64(tb.Bottom) + off
		}
	case taskbar.EdgeLeft, taskbar.EdgeRight:
		switch {
		case inFlyout && !req.Pinned:
			left = cx - w/2
			top = float64(anchor.Top) - h - off
		case req.Taskbar.Edge == taskbar.EdgeLeft:
			left = float64(tb.Right) + off
			top = cy - h/2
		default:
			left = float64(tb.Left) - w - off
			top = cy - h/2
		}
	default:
		left = cx - w/2
		if inFlyout {
			top = float64(anchor.Top) - h - off
		} else {
			top = float64(tb.Top) - h - off
		}
	}

	if wa := req.WorkArea; !wa.Empty() {
		if left+w+off > float64(wa.Right) {
			left = float64(wa.Right) - w - off
		} else if left < float64(wa.Left) {
			left = float64(wa.Left) + off
		}
		if top+h+off > float64(wa.Bottom) {
			top = float64(wa.Bottom) - h - off
		}
	}
	return screen.Point{X: int32(left), Y: int32(top)}
}

// Live builds a Request from the running shell and returns its position.
func Live(tb *taskbar.Info, icon screen.Rect, width, height int32, scale float64, pinned bool) screen.Point {
	d := tb.Describe()
	req := Request{
		Icon:    icon,
		Taskbar: d,
		Width:   width,
		Height:  height,
		Scale:   scale,
		Pinned:  pinned,
	}
	if r, ok := tb.OverflowButtonRect(); ok {
		req.OverflowButton = r
	}
	if wa, ok := screen.WorkArea(Anchor(icon, d)); ok {
		req.WorkArea = wa
	}
	return Position(req)
}
