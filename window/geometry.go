//go:build windows

package window

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// GetWindowRect returns the bounding rectangle of hwnd in screen coordinates.
func GetWindowRect(hwnd uintptr) (windows.Rect, error) {
	var r windows.Rect
	ret, _, _ := ProcGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return windows.Rect{}, fmt.Errorf("GetWindowRect failed")
	}
	return r, nil
}

// MapRectToScreen converts a rectangle relative to hwnd's client area
// into screen coordinates.
func MapRectToScreen(hwnd uintptr, r windows.Rect) windows.Rect {
	// A RECT is two POINTs back to back.
	ProcMapWindowPoints.Call(hwnd, 0, uintptr(unsafe.Pointer(&r)), 2)
	return r
}

// GetCursorPos returns the cursor position in screen coordinates.
func GetCursorPos() (x, y int32, err error) {
	var pt struct{ X, Y int32 }
	ret, _, _ := ProcGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return 0, 0, fmt.Errorf("GetCursorPos failed")
	}
	return pt.X, pt.Y, nil
}

// SendMessage delivers msg synchronously to hwnd and returns the result.
func SendMessage(hwnd uintptr, msg uint32, wparam, lparam uintptr) uintptr {
	ret, _, _ := ProcSendMessageW.Call(hwnd, uintptr(msg), wparam, lparam)
	return ret
}
