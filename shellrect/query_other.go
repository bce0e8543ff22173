//go:build !windows

package shellrect

import (
	"github.com/rpdg/trayloc/notifyicon"
	"github.com/rpdg/trayloc/screen"
)

type systemQuerier struct{}

func (systemQuerier) Supported() bool { return false }

func (systemQuerier) IconRect(notifyicon.Identifier) (screen.Rect, Status) {
	return screen.Rect{}, StatusNotFound
}
