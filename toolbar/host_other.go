//go:build !windows

package toolbar

import (
	"github.com/rpdg/trayloc/screen"
)

type systemHost struct{}

func (systemHost) Toolbars() ([]Toolbar, error)        { return nil, ErrNoToolbars }
func (systemHost) OverflowButton() (screen.Rect, bool) { return screen.Rect{}, false }
func (systemHost) PointerSize() int                    { return 0 }
