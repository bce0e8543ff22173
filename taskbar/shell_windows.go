//go:build windows

package taskbar

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/rpdg/trayloc/screen"
	"github.com/rpdg/trayloc/window"
)

// APPBARDATA
type appBarData struct {
	Size            uint32
	Wnd             windows.HWND
	CallbackMessage uint32
	Edge            uint32
	Rect            windows.Rect
	LParam          uintptr
}

type systemShell struct{}

func (systemShell) AppBarMessage(msg uint32, data *AppBarData) (uintptr, bool) {
	hwnd, err := window.FindByClass(ClassTaskbar)
	if err != nil {
		return 0, false
	}

	abd := appBarData{
		Wnd:    windows.HWND(hwnd),
		Edge:   data.Edge,
		LParam: data.LParam,
	}
	abd.Size = uint32(unsafe.Sizeof(abd))

	ret, _, _ := window.ProcSHAppBarMessage.Call(uintptr(msg), uintptr(unsafe.Pointer(&abd)))

	data.Edge = abd.Edge
	data.Rect = fromWinRect(abd.Rect)
	data.LParam = abd.LParam
	return ret, true
}

func (systemShell) WindowRect(classes ...string) (screen.Rect, bool) {
	if len(classes) == 0 {
		return screen.Rect{}, false
	}
	hwnd, err := window.FindByClass(classes[0])
	if err != nil {
		return screen.Rect{}, false
	}
	for _, class := range classes[1:] {
		if hwnd, err = window.FindChild(hwnd, class); err != nil {
			return screen.Rect{}, false
		}
	}
	r, err := window.GetWindowRect(hwnd)
	if err != nil {
		return screen.Rect{}, false
	}
	return fromWinRect(r), true
}

func (systemShell) ForegroundClass() string {
	fg := window.ForegroundWindow()
	if fg == 0 {
		return ""
	}
	name, err := window.ClassName(fg)
	if err != nil {
		return ""
	}
	return name
}

func (systemShell) Cursor() (screen.Point, bool) {
	x, y, err := window.GetCursorPos()
	if err != nil {
		return screen.Point{}, false
	}
	return screen.Point{X: x, Y: y}, true
}

func fromWinRect(r windows.Rect) screen.Rect {
	return screen.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}
