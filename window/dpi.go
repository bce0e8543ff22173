//go:build windows

package window

import (
	"fmt"
	"unsafe"
)

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is (HANDLE)(-4)
var dpiAwarenessPerMonitorV2 = ^uintptr(3)

// DPI_AWARENESS_PER_MONITOR_AWARE
const dpiAwarenessPerMonitor = 2

// EnablePerMonitorDPI opts the process into physical-pixel coordinates so
// window rectangles and screen captures agree with each other.
func EnablePerMonitorDPI() error {
	if ProcSetProcessDpiAwarenessCtx.Find() != nil {
		return fmt.Errorf("SetProcessDpiAwarenessContext not found")
	}
	r, _, _ := ProcSetProcessDpiAwarenessCtx.Call(dpiAwarenessPerMonitorV2)
	if r == 0 {
		return fmt.Errorf("SetProcessDpiAwarenessContext failed")
	}
	return nil
}

// IsPerMonitorDPIAware reports whether the calling thread runs with
// per-monitor DPI awareness (V1 or V2).
func IsPerMonitorDPIAware() bool {
	if ProcGetThreadDpiAwarenessCtx.Find() != nil || ProcGetAwarenessFromDpiCtx.Find() != nil {
		return false
	}
	ctx, _, _ := ProcGetThreadDpiAwarenessCtx.Call()
	awareness, _, _ := ProcGetAwarenessFromDpiCtx.Call(ctx)
	return int32(awareness) == dpiAwarenessPerMonitor
}

// DefaultDPI is the logical DPI that coordinates are scaled against.
const DefaultDPI = 96

// WindowDPI returns the DPI of the monitor hwnd is on. It prefers
// GetDpiForWindow and falls back to the monitor query on systems without it.
func WindowDPI(hwnd uintptr) (uint32, error) {
	if ProcGetDpiForWindow.Find() == nil {
		if r, _, _ := ProcGetDpiForWindow.Call(hwnd); r != 0 {
			return uint32(r), nil
		}
	}
	hMon := MonitorFromWindow(hwnd)
	if hMon == 0 {
		return DefaultDPI, fmt.Errorf("MonitorFromWindow failed")
	}
	dpi, _, err := GetDpiForMonitor(hMon)
	if err != nil {
		return DefaultDPI, err
	}
	return dpi, nil
}

// Scale returns the scale factor for hwnd's monitor, 1 when unknown.
func Scale(hwnd uintptr) float64 {
	dpi, err := WindowDPI(hwnd)
	if err != nil || dpi == 0 {
		return 1
	}
	return float64(dpi) / DefaultDPI
}

func MonitorFromWindow(hwnd uintptr) uintptr {
	const monitorDefaultToNearest = 2
	r, _, _ := ProcMonitorFromWindow.Call(hwnd, monitorDefaultToNearest)
	return r
}

// GetDpiForMonitor returns the effective DPI of hmonitor.
func GetDpiForMonitor(hmonitor uintptr) (dpiX, dpiY uint32, err error) {
	if ProcGetDpiForMonitor.Find() != nil {
		return DefaultDPI, DefaultDPI, fmt.Errorf("GetDpiForMonitor not found")
	}
	const mdtEffectiveDPI = 0
	var dx, dy uint32
	r, _, _ := ProcGetDpiForMonitor.Call(hmonitor, mdtEffectiveDPI, uintptr(unsafe.Pointer(&dx)), uintptr(unsafe.Pointer(&dy)))
	if r != 0 {
		return DefaultDPI, DefaultDPI, fmt.Errorf("GetDpiForMonitor failed: HRESULT %#x", uint32(r))
	}
	return dx, dy, nil
}
