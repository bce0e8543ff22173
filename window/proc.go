//go:build windows

package window

import (
	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	shcore   = windows.NewLazySystemDLL("shcore.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")

	ProcFindWindowW       = user32.NewProc("FindWindowW")
	ProcFindWindowExW     = user32.NewProc("FindWindowExW")
	ProcIsWindow          = user32.NewProc("IsWindow")
	ProcGetWindowRect     = user32.NewProc("GetWindowRect")
	ProcMapWindowPoints   = user32.NewProc("MapWindowPoints")
	ProcSendMessageW      = user32.NewProc("SendMessageW")
	ProcGetCursorPos      = user32.NewProc("GetCursorPos")
	ProcMonitorFromWindow = user32.NewProc("MonitorFromWindow")
	ProcMonitorFromRect   = user32.NewProc("MonitorFromRect")
	ProcGetMonitorInfoW   = user32.NewProc("GetMonitorInfoW")
	ProcGetShellWindow    = user32.NewProc("GetShellWindow")
	ProcGetDesktopWindow  = user32.NewProc("GetDesktopWindow")

	ProcSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	ProcUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	ProcCallNextHookEx      = user32.NewProc("CallNextHookEx")
	ProcGetMessageW         = user32.NewProc("GetMessageW")
	ProcPostThreadMessageW  = user32.NewProc("PostThreadMessageW")

	ProcGetDpiForWindow           = user32.NewProc("GetDpiForWindow") // Win10+
	ProcSetProcessDpiAwarenessCtx = user32.NewProc("SetProcessDpiAwarenessContext")
	ProcGetThreadDpiAwarenessCtx  = user32.NewProc("GetThreadDpiAwarenessContext")
	ProcGetAwarenessFromDpiCtx    = user32.NewProc("GetAwarenessFromDpiAwarenessContext")

	ProcGetDpiForMonitor = shcore.NewProc("GetDpiForMonitor")

	ProcVirtualAllocEx = kernel32.NewProc("VirtualAllocEx")
	ProcVirtualFreeEx  = kernel32.NewProc("VirtualFreeEx")

	ProcSHAppBarMessage        = shell32.NewProc("SHAppBarMessage")
	ProcShellNotifyIconGetRect = shell32.NewProc("Shell_NotifyIconGetRect") // Win7+
	ProcGetDC                  = user32.NewProc("GetDC")
	ProcReleaseDC              = user32.NewProc("ReleaseDC")
	ProcCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	ProcDeleteDC               = gdi32.NewProc("DeleteDC")
	ProcCreateDIBSection       = gdi32.NewProc("CreateDIBSection")
	ProcSelectObject           = gdi32.NewProc("SelectObject")
	ProcDeleteObject           = gdi32.NewProc("DeleteObject")
	ProcBitBlt                 = gdi32.NewProc("BitBlt")
)
