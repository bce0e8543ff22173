//go:build windows

package window

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ErrNotFound implies no window matched the requested class.
var ErrNotFound = errors.New("window not found")

func utf16Ptr(s string) *uint16 {
	ptr, _ := windows.UTF16PtrFromString(s)
	return ptr
}

// FindByClass returns the first top-level window with the given class name.
func FindByClass(class string) (uintptr, error) {
	ret, _, _ := ProcFindWindowW.Call(
		uintptr(unsafe.Pointer(utf16Ptr(class))),
		0,
	)
	if ret == 0 {
		return 0, fmt.Errorf("%w: class %s", ErrNotFound, class)
	}
	return ret, nil
}

// FindChild returns the first direct child of parent with the given class name.
func FindChild(parent uintptr, class string) (uintptr, error) {
	ret, _, _ := ProcFindWindowExW.Call(
		parent,
		0,
		uintptr(unsafe.Pointer(utf16Ptr(class))),
		0,
	)
	if ret == 0 {
		return 0, fmt.Errorf("%w: child class %s", ErrNotFound, class)
	}
	return ret, nil
}

// ClassName returns the window class of hwnd.
func ClassName(hwnd uintptr) (string, error) {
	buf := make([]uint16, 256)
	n, err := windows.GetClassName(windows.HWND(hwnd), &buf[0], int32(len(buf)))
	if err != nil {
		return "", fmt.Errorf("GetClassName failed: %w", err)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

type classFilter struct {
	class string
	hwnds []uintptr
}

// One callback for the life of the process; NewCallback slots are never freed.
var enumByClass = syscall.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
	f := (*classFilter)(unsafe.Pointer(lparam))
	name, err := ClassName(hwnd)
	if err == nil && name == f.class {
		f.hwnds = append(f.hwnds, hwnd)
	}
	return 1 // Continue enumeration
})

// DescendantsByClass walks every descendant of parent and returns the ones
// with the given class, in z-order.
func DescendantsByClass(parent uintptr, class string) []uintptr {
	f := &classFilter{class: class}
	// EnumChildWindows reports no useful error; an empty result is enough.
	windows.EnumChildWindows(windows.HWND(parent), enumByClass, unsafe.Pointer(f))
	return f.hwnds
}

// IsValid reports whether hwnd still identifies an existing window.
func IsValid(hwnd uintptr) bool {
	if hwnd == 0 {
		return false
	}
	r, _, _ := ProcIsWindow.Call(hwnd)
	return r != 0
}

// ForegroundWindow returns the window the user is currently working with.
func ForegroundWindow() uintptr {
	return uintptr(windows.GetForegroundWindow())
}
