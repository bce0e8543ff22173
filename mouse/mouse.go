// Package mouse watches global mouse input through a process-wide
// low-level hook.
package mouse

import (
	"github.com/rpdg/trayloc/screen"
)

const (
	WM_MOUSEMOVE   = 0x0200
	WM_LBUTTONDOWN = 0x0201
	WM_LBUTTONUP   = 0x0202
	WM_RBUTTONDOWN = 0x0204
	WM_RBUTTONUP   = 0x0205
	WM_MBUTTONDOWN = 0x0207
	WM_MBUTTONUP   = 0x0208
	WM_MOUSEWHEEL  = 0x020A
)

type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "none"
}

type Action int

const (
	ActionMove Action = iota
	ActionDown
	ActionUp
	ActionWheel
)

// Event is one mouse message seen by the hook. Pt is in screen coordinates.
type Event struct {
	Action Action
	Button Button
	Pt     screen.Point
	// Delta is the wheel distance, a multiple of 120.
	Delta int16
}

// decode turns a hook message into an Event. ok is false for messages the
// package does not report.
func decode(msg uint32, pt screen.Point, mouseData uint32) (Event, bool) {
	e := Event{Pt: pt}
	switch msg {
	case WM_MOUSEMOVE:
		e.Action = ActionMove
	case WM_LBUTTONDOWN:
		e.Action, e.Button = ActionDown, ButtonLeft
	case WM_LBUTTONUP:
		e.Action, e.Button = ActionUp, ButtonLeft
	case WM_RBUTTONDOWN:
		e.Action, e.Button = ActionDown, ButtonRight
	case WM_RBUTTONUP:
		e.Action, e.Button = ActionUp, ButtonRight
	case WM_MBUTTONDOWN:
		e.Action, e.Button = ActionDown, ButtonMiddle
	case WM_MBUTTONUP:
		e.Action, e.Button = ActionUp, ButtonMiddle
	case WM_MOUSEWHEEL:
		// High word of mouseData.
		e.Action, e.Delta = ActionWheel, int16(mouseData>>16)
	default:
		return Event{}, false
	}
	return e, true
}
