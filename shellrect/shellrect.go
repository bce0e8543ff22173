// Package shellrect asks the shell itself where an icon is, on systems that
// export Shell_NotifyIconGetRect.
package shellrect

import (
	"github.com/rpdg/trayloc/notifyicon"
	"github.com/rpdg/trayloc/screen"
)

// Status is the shell's verdict for one query.
type Status int

const (
	// StatusNotFound: the shell does not know the icon.
	StatusNotFound Status = iota
	// StatusVisible: the icon is on the taskbar.
	StatusVisible
	// StatusOverflow: the icon exists but lives in the overflow area.
	StatusOverflow
)

// Querier performs the raw shell query.
type Querier interface {
	Supported() bool
	IconRect(id notifyicon.Identifier) (screen.Rect, Status)
}

// Strategy turns raw query results into a located rectangle.
type Strategy struct {
	q Querier
}

// New returns a Strategy backed by the running shell.
func New() *Strategy {
	return &Strategy{q: systemQuerier{}}
}

// NewWithQuerier returns a Strategy backed by q.
func NewWithQuerier(q Querier) *Strategy {
	return &Strategy{q: q}
}

// Supported reports whether the shell can answer icon-rectangle queries.
func (s *Strategy) Supported() bool {
	return s.q.Supported()
}

// Locate returns the icon rectangle. Icons in the overflow area are only
// reported when tolerateHidden is set; otherwise the result is
// notifyicon.ErrHidden. A zero-area answer is never a location.
func (s *Strategy) Locate(id notifyicon.Identifier, tolerateHidden bool) (screen.Rect, error) {
	if !id.Valid() {
		return screen.Rect{}, notifyicon.ErrNoIdentifier
	}
	r, status := s.q.IconRect(id)
	switch status {
	case StatusVisible:
	case StatusOverflow:
		if !tolerateHidden {
			return screen.Rect{}, notifyicon.ErrHidden
		}
	default:
		return screen.Rect{}, notifyicon.ErrNotFound
	}
	if r.Empty() {
		return screen.Rect{}, notifyicon.ErrNotFound
	}
	return r, nil
}
