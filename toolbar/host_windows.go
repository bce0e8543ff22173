//go:build windows

package toolbar

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/rpdg/trayloc/screen"
	"github.com/rpdg/trayloc/taskbar"
	"github.com/rpdg/trayloc/window"
)

const (
	wmUser        = 0x0400
	tbGetButton   = wmUser + 23
	tbButtonCount = wmUser + 24
	tbGetItemRect = wmUser + 29
)

type systemHost struct{}

func (systemHost) Toolbars() ([]Toolbar, error) {
	tray, err := window.FindByClass(taskbar.ClassTaskbar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoToolbars, err)
	}

	var hwnds []uintptr
	if notify, err := window.FindChild(tray, taskbar.ClassNotifyArea); err == nil {
		hwnds = append(hwnds, window.DescendantsByClass(notify, taskbar.ClassToolbar)...)
	}
	if overflow, err := window.FindByClass(taskbar.ClassOverflowWindow); err == nil {
		hwnds = append(hwnds, window.DescendantsByClass(overflow, taskbar.ClassToolbar)...)
	}

	toolbars := make([]Toolbar, 0, len(hwnds))
	for _, h := range hwnds {
		toolbars = append(toolbars, remoteToolbar(h))
	}
	return toolbars, nil
}

func (systemHost) OverflowButton() (screen.Rect, bool) {
	return taskbar.New().OverflowButtonRect()
}

func (systemHost) PointerSize() int { return window.PointerSize }

type remoteToolbar uintptr

func (t remoteToolbar) ButtonCount() int {
	// The fly-out toolbars come and go with the fly-out.
	if !window.IsValid(uintptr(t)) {
		return 0
	}
	return int(window.SendMessage(uintptr(t), tbButtonCount, 0, 0))
}

func (t remoteToolbar) Open() (Channel, error) {
	p, err := window.OpenOwner(uintptr(t))
	if err != nil {
		return nil, err
	}
	size := buttonSize(window.PointerSize)
	if size < rectSize {
		size = rectSize
	}
	buf, err := p.Alloc(uintptr(size))
	if err != nil {
		p.Close()
		return nil, err
	}
	return &remoteChannel{hwnd: uintptr(t), proc: p, scratch: buf}, nil
}

func (t remoteToolbar) ToScreen(r screen.Rect) screen.Rect {
	m := window.MapRectToScreen(uintptr(t), windows.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom})
	return screen.Rect{Left: m.Left, Top: m.Top, Right: m.Right, Bottom: m.Bottom}
}

type remoteChannel struct {
	hwnd    uintptr
	proc    *window.Process
	scratch uintptr
}

func (c *remoteChannel) Button(index int) ([]byte, error) {
	if window.SendMessage(c.hwnd, tbGetButton, uintptr(index), c.scratch) == 0 {
		return nil, fmt.Errorf("TB_GETBUTTON %d failed", index)
	}
	return c.Read(c.scratch, buttonSize(window.PointerSize))
}

func (c *remoteChannel) ItemRect(index int) ([]byte, error) {
	if window.SendMessage(c.hwnd, tbGetItemRect, uintptr(index), c.scratch) == 0 {
		return nil, fmt.Errorf("TB_GETITEMRECT %d failed", index)
	}
	return c.Read(c.scratch, rectSize)
}

func (c *remoteChannel) Read(addr uintptr, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := c.proc.Read(addr, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (c *remoteChannel) Close() error {
	return errors.Join(c.proc.Free(c.scratch), c.proc.Close())
}
