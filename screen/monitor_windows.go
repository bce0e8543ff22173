//go:build windows

package screen

import (
	"unsafe"

	"github.com/rpdg/trayloc/window"
)

// WorkArea returns the work area of the monitor that intersects r the most,
// or of the nearest monitor when r is off-screen.
func WorkArea(r Rect) (Rect, bool) {
	const MONITOR_DEFAULTTONEAREST = 2
	rs := rectStruct{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
	hMon, _, _ := window.ProcMonitorFromRect.Call(uintptr(unsafe.Pointer(&rs)), MONITOR_DEFAULTTONEAREST)
	if hMon == 0 {
		return Rect{}, false
	}
	mon, ok := monitorInfo(hMon)
	return mon.WorkArea, ok
}

// ForegroundIsFullScreen reports whether the foreground window covers its
// whole monitor, which hides the taskbar. The desktop and shell windows do
// not count.
func ForegroundIsFullScreen() bool {
	fg := window.ForegroundWindow()
	if fg == 0 {
		return false
	}
	shell, _, _ := window.ProcGetShellWindow.Call()
	desktop, _, _ := window.ProcGetDesktopWindow.Call()
	if fg == shell || fg == desktop {
		return false
	}

	wr, err := window.GetWindowRect(fg)
	if err != nil {
		return false
	}
	mon, ok := monitorInfo(window.MonitorFromWindow(fg))
	if !ok {
		return false
	}
	return wr.Left <= mon.Bounds.Left && wr.Top <= mon.Bounds.Top &&
		wr.Right >= mon.Bounds.Right && wr.Bottom >= mon.Bounds.Bottom
}

func monitorInfo(hMonitor uintptr) (Monitor, bool) {
	var mi monitorInfoExW
	mi.Size = uint32(unsafe.Sizeof(mi))

	ret, _, _ := window.ProcGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
	if ret == 0 {
		return Monitor{}, false
	}
	return Monitor{
		Bounds: Rect{
			Left:   mi.Monitor.Left,
			Top:    mi.Monitor.Top,
			Right:  mi.Monitor.Right,
			Bottom: mi.Monitor.Bottom,
		},
		WorkArea: Rect{
			Left:   mi.Work.Left,
			Top:    mi.Work.Top,
			Right:  mi.Work.Right,
			Bottom: mi.Work.Bottom,
		},
		Primary: (mi.Flags & 1) != 0, // MONITORINFOF_PRIMARY = 1
	}, true
}

type rectStruct struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type monitorInfoExW struct {
	Size    uint32
	Monitor rectStruct
	Work    rectStruct
	Flags   uint32
	Device  [32]uint16
}
