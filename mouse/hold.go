package mouse

import (
	"sync"
	"time"

	"github.com/rpdg/trayloc/screen"
)

// HoldDetector reports a button that stays pressed for a given duration.
// Feed it events with Handle, usually from the hook Handler.
type HoldDetector struct {
	d      time.Duration
	onHold func(Button, screen.Point)

	mu     sync.Mutex
	timer  *time.Timer
	button Button
	pt     screen.Point
	seq    uint64
}

func NewHoldDetector(d time.Duration, onHold func(Button, screen.Point)) *HoldDetector {
	return &HoldDetector{d: d, onHold: onHold}
}

func (h *HoldDetector) Handle(e Event) {
	switch e.Action {
	case ActionDown:
		h.press(e.Button, e.Pt)
	case ActionUp:
		h.Cancel()
	case ActionMove:
		h.mu.Lock()
		if h.button != ButtonNone {
			h.pt = e.Pt
		}
		h.mu.Unlock()
	}
}

func (h *HoldDetector) press(b Button, pt screen.Point) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopLocked()
	h.button, h.pt = b, pt
	seq := h.seq
	h.timer = time.AfterFunc(h.d, func() { h.fire(seq) })
}

func (h *HoldDetector) fire(seq uint64) {
	h.mu.Lock()
	if seq != h.seq || h.button == ButtonNone {
		// Released or pressed again after the timer had already fired.
		h.mu.Unlock()
		return
	}
	b, pt := h.button, h.pt
	h.button = ButtonNone
	h.timer = nil
	h.mu.Unlock()

	h.onHold(b, pt)
}

// Cancel forgets the current press.
func (h *HoldDetector) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopLocked()
	h.button = ButtonNone
}

func (h *HoldDetector) stopLocked() {
	h.seq++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}
