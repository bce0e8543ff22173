//go:build windows

package mouse

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/rpdg/trayloc/screen"
	"github.com/rpdg/trayloc/window"
)

const (
	whMouseLL = 14
	wmQuit    = 0x0012

	llmhfInjected = 0x01
)

type msllHookStruct struct {
	Pt          struct{ X, Y int32 }
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// handler is only read on the hook thread, which starts after it is set.
var handler Handler

var hookProc = syscall.NewCallback(func(code int32, wparam, lparam uintptr) uintptr {
	if code >= 0 && handler != nil {
		info := (*msllHookStruct)(unsafe.Pointer(lparam))
		if info.Flags&llmhfInjected == 0 {
			pt := screen.Point{X: info.Pt.X, Y: info.Pt.Y}
			if e, ok := decode(uint32(wparam), pt, info.MouseData); ok {
				handler(e)
			}
		}
	}
	ret, _, _ := window.ProcCallNextHookEx.Call(0, uintptr(code), wparam, lparam)
	return ret
})

// systemInstall runs a WH_MOUSE_LL hook on a dedicated locked thread with
// its own message loop. The returned stop function quits that loop and
// waits for the hook to be removed.
func systemInstall(h Handler) (func() error, error) {
	type started struct {
		tid uint32
		err error
	}
	ready := make(chan started, 1)
	done := make(chan error, 1)
	handler = h

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		hook, _, err := window.ProcSetWindowsHookExW.Call(whMouseLL, hookProc, 0, 0)
		if hook == 0 {
			ready <- started{err: fmt.Errorf("SetWindowsHookExW failed: %w", err)}
			return
		}
		ready <- started{tid: windows.GetCurrentThreadId()}

		var m msg
		for {
			r, _, _ := window.ProcGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			// 0 is WM_QUIT, -1 an error; both end the loop.
			if int32(r) <= 0 {
				break
			}
		}

		ret, _, err := window.ProcUnhookWindowsHookEx.Call(hook)
		if ret == 0 {
			done <- fmt.Errorf("UnhookWindowsHookEx failed: %w", err)
			return
		}
		done <- nil
	}()

	s := <-ready
	if s.err != nil {
		return nil, s.err
	}

	stop := func() error {
		r, _, err := window.ProcPostThreadMessageW.Call(uintptr(s.tid), wmQuit, 0, 0)
		if r == 0 {
			return fmt.Errorf("PostThreadMessageW failed: %w", err)
		}
		return <-done
	}
	return stop, nil
}
