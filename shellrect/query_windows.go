//go:build windows

package shellrect

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/rpdg/trayloc/notifyicon"
	"github.com/rpdg/trayloc/screen"
	"github.com/rpdg/trayloc/window"
)

// NOTIFYICONIDENTIFIER
type notifyIconIdentifier struct {
	Size     uint32
	Wnd      windows.HWND
	ID       uint32
	GuidItem windows.GUID
}

const (
	sOK    = 0
	sFalse = 1
)

type systemQuerier struct{}

// Supported probes for the export instead of checking the OS version.
func (systemQuerier) Supported() bool {
	return window.ProcShellNotifyIconGetRect.Find() == nil
}

func (systemQuerier) IconRect(id notifyicon.Identifier) (screen.Rect, Status) {
	nii := notifyIconIdentifier{
		Wnd: windows.HWND(id.Owner),
		ID:  id.ID,
	}
	nii.Size = uint32(unsafe.Sizeof(nii))

	var r windows.Rect
	hr, _, _ := window.ProcShellNotifyIconGetRect.Call(
		uintptr(unsafe.Pointer(&nii)),
		uintptr(unsafe.Pointer(&r)),
	)
	rect := screen.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}

	switch int32(hr) {
	case sOK:
		return rect, StatusVisible
	case sFalse:
		return rect, StatusOverflow
	}
	return screen.Rect{}, StatusNotFound
}
