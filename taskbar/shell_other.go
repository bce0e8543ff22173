//go:build !windows

package taskbar

import "github.com/rpdg/trayloc/screen"

// systemShell has no taskbar to talk to outside Windows.
type systemShell struct{}

func (systemShell) AppBarMessage(uint32, *AppBarData) (uintptr, bool) { return 0, false }

func (systemShell) WindowRect(...string) (screen.Rect, bool) { return screen.Rect{}, false }

func (systemShell) ForegroundClass() string { return "" }

func (systemShell) Cursor() (screen.Point, bool) { return screen.Point{}, false }
