package taskbar

import (
	"github.com/rpdg/trayloc/screen"
)

// NotifyAreaRect returns the screen rectangle of the notification area.
func (i *Info) NotifyAreaRect() (screen.Rect, bool) {
	r, ok := i.shell.WindowRect(ClassTaskbar, ClassNotifyArea)
	if !ok || r.Empty() {
		return screen.Rect{}, false
	}
	return r, true
}

// OverflowButtonRect returns the rectangle of the "show hidden icons"
// button, where hidden icons are reported to live.
func (i *Info) OverflowButtonRect() (screen.Rect, bool) {
	r, ok := i.shell.WindowRect(ClassTaskbar, ClassNotifyArea, ClassOverflowButton)
	if !ok || r.Empty() {
		return screen.Rect{}, false
	}
	return r, true
}

// InFlyout reports whether r lies entirely outside the taskbar, which is
// where the overflow fly-out puts its icons. Always false while the
// taskbar rectangle is unknown.
func (i *Info) InFlyout(r screen.Rect) bool {
	tb := i.Rect()
	if tb.Empty() || r.Empty() {
		return false
	}
	return r.Outside(tb)
}

// NotifyAreaActive reports whether the taskbar or the overflow fly-out
// currently has the focus.
func (i *Info) NotifyAreaActive() bool {
	switch i.shell.ForegroundClass() {
	case ClassTaskbar, ClassOverflowWindow:
		return true
	}
	return false
}
