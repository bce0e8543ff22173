//go:build windows

package notifyicon

import (
	"fmt"
	"image"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const className = "trayloc.NotifyIconHost"

// HWND_MESSAGE
var hwndMessage = ^win.HWND(2)

var (
	registerOnce sync.Once
	registerErr  error
	classNamePtr *uint16
)

// Host registers and owns one notification-area icon backed by a hidden
// message-only window. Create and Close it on the same locked OS thread.
type Host struct {
	mu    sync.Mutex
	nid   win.NOTIFYICONDATA
	img   image.Image
	hicon win.HICON
}

var _ Icon = (*Host)(nil)

// NewHost adds an icon with the given id, image and tooltip to the
// notification area.
func NewHost(id uint32, img image.Image, tip string) (*Host, error) {
	if id == 0 {
		return nil, fmt.Errorf("notify icon id must be non-zero")
	}
	registerOnce.Do(registerClass)
	if registerErr != nil {
		return nil, registerErr
	}

	hwnd := win.CreateWindowEx(0, classNamePtr, nil, 0, 0, 0, 0, 0,
		hwndMessage, 0, win.GetModuleHandle(nil), nil)
	if hwnd == 0 {
		return nil, fmt.Errorf("CreateWindowEx failed")
	}

	hicon, err := imageToHICON(img)
	if err != nil {
		win.DestroyWindow(hwnd)
		return nil, err
	}

	h := &Host{img: img, hicon: hicon}
	h.nid.CbSize = uint32(unsafe.Sizeof(h.nid))
	h.nid.HWnd = hwnd
	h.nid.UID = id
	h.nid.UFlags = win.NIF_ICON | win.NIF_TIP
	h.nid.HIcon = hicon
	setTip(&h.nid, tip)

	if !win.Shell_NotifyIcon(win.NIM_ADD, &h.nid) {
		win.DestroyIcon(hicon)
		win.DestroyWindow(hwnd)
		return nil, fmt.Errorf("Shell_NotifyIcon(NIM_ADD) failed")
	}
	return h, nil
}

func registerClass() {
	classNamePtr, registerErr = windows.UTF16PtrFromString(className)
	if registerErr != nil {
		return
	}
	wc := win.WNDCLASSEX{
		LpfnWndProc:   syscall.NewCallback(wndProc),
		HInstance:     win.GetModuleHandle(nil),
		LpszClassName: classNamePtr,
	}
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	if win.RegisterClassEx(&wc) == 0 {
		registerErr = fmt.Errorf("RegisterClassEx failed")
	}
}

func wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func setTip(nid *win.NOTIFYICONDATA, tip string) {
	u, err := windows.UTF16FromString(tip)
	if err != nil {
		return
	}
	// Leave room for the terminating NUL.
	if len(u) > len(nid.SzTip) {
		u = append(u[:len(nid.SzTip)-1], 0)
	}
	copy(nid.SzTip[:], u)
}

func (h *Host) Identifier() (Identifier, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := Identifier{Owner: uintptr(h.nid.HWnd), ID: h.nid.UID}
	return id, id.Valid()
}

func (h *Host) Image() image.Image {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.img
}

// SetImage replaces the icon shown in the notification area.
func (h *Host) SetImage(img image.Image) error {
	hicon, err := imageToHICON(img)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	old := h.hicon
	h.nid.UFlags = win.NIF_ICON
	h.nid.HIcon = hicon
	if !win.Shell_NotifyIcon(win.NIM_MODIFY, &h.nid) {
		h.nid.HIcon = old
		win.DestroyIcon(hicon)
		return fmt.Errorf("Shell_NotifyIcon(NIM_MODIFY) failed")
	}
	h.hicon = hicon
	h.img = img
	if old != 0 {
		win.DestroyIcon(old)
	}
	return nil
}

// Close removes the icon and destroys its window.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ok := win.Shell_NotifyIcon(win.NIM_DELETE, &h.nid)
	if h.hicon != 0 {
		win.DestroyIcon(h.hicon)
		h.hicon = 0
	}
	win.DestroyWindow(h.nid.HWnd)
	if !ok {
		return fmt.Errorf("Shell_NotifyIcon(NIM_DELETE) failed")
	}
	return nil
}

// SmallIconSize returns the size the shell draws notification-area icons at.
func SmallIconSize() (width, height int) {
	return int(win.GetSystemMetrics(win.SM_CXSMICON)), int(win.GetSystemMetrics(win.SM_CYSMICON))
}
