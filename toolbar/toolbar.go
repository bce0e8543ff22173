// Package toolbar finds a notification-area icon by reading the button
// records of the shell's toolbar controls out of the shell process.
package toolbar

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpdg/trayloc/notifyicon"
	"github.com/rpdg/trayloc/screen"
)

// ErrNoToolbars implies the notification area has no toolbar controls this
// package knows how to read.
var ErrNoToolbars = errors.New("no notification area toolbars")

// Host enumerates the toolbars to scan.
type Host interface {
	Toolbars() ([]Toolbar, error)
	// OverflowButton returns the "show hidden icons" button rectangle.
	OverflowButton() (screen.Rect, bool)
	// PointerSize is the pointer width the foreign structures are laid out for.
	PointerSize() int
}

// Toolbar is one toolbar control owned by another process.
type Toolbar interface {
	ButtonCount() int
	// Open acquires the owning process and a scratch buffer inside it.
	Open() (Channel, error)
	// ToScreen maps a toolbar-relative rectangle to screen coordinates.
	ToScreen(r screen.Rect) screen.Rect
}

// Channel moves raw bytes out of the toolbar's process. Every call returns
// exactly the bytes that were transferred, so short reads are visible.
type Channel interface {
	// Button has the toolbar fill the scratch buffer with the TBBUTTON at
	// index and reads it back.
	Button(index int) ([]byte, error)
	// ItemRect does the same for the item rectangle at index.
	ItemRect(index int) ([]byte, error)
	// Read copies size bytes at addr in the foreign process.
	Read(addr uintptr, size int) ([]byte, error)
	// Close frees the scratch buffer and the process handle.
	Close() error
}

// Button is a validated tray button record.
type Button struct {
	Hidden bool
	Icon   notifyicon.Identifier
}

type reader struct {
	ch      Channel
	ptrSize int
}

func (r reader) button(index int) (Button, error) {
	b, err := r.ch.Button(index)
	if err != nil {
		return Button{}, err
	}
	raw, err := decodeButton(b, r.ptrSize)
	if err != nil {
		return Button{}, err
	}
	if raw.data == 0 {
		return Button{}, fmt.Errorf("%w: button %d has no icon record", ErrLayoutMismatch, index)
	}
	rec, err := r.ch.Read(raw.data, linkageSize(r.ptrSize))
	if err != nil {
		return Button{}, err
	}
	owner, id, err := decodeLinkage(rec, r.ptrSize)
	if err != nil {
		return Button{}, err
	}
	return Button{
		Hidden: raw.state&stateHidden != 0,
		Icon:   notifyicon.Identifier{Owner: owner, ID: id},
	}, nil
}

func (r reader) itemRect(index int) (screen.Rect, error) {
	b, err := r.ch.ItemRect(index)
	if err != nil {
		return screen.Rect{}, err
	}
	left, top, right, bottom, err := decodeRect(b)
	if err != nil {
		return screen.Rect{}, err
	}
	return screen.Rect{Left: left, Top: top, Right: right, Bottom: bottom}, nil
}

type match struct {
	found  bool
	hidden bool
	rect   screen.Rect
}

// Scan looks for id among the buttons of every toolbar h reports. A hidden
// button resolves to the overflow button when tolerateHidden is set and to
// notifyicon.ErrHidden otherwise. Any read failure ends the scan with that
// error; notifyicon.ErrNotFound means every button was read and none matched.
func Scan(h Host, id notifyicon.Identifier, tolerateHidden bool, logger *slog.Logger) (screen.Rect, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !id.Valid() {
		return screen.Rect{}, notifyicon.ErrNoIdentifier
	}

	toolbars, err := h.Toolbars()
	if err != nil {
		return screen.Rect{}, err
	}
	if len(toolbars) == 0 {
		return screen.Rect{}, ErrNoToolbars
	}

	ptrSize := h.PointerSize()
	for i, tb := range toolbars {
		m, err := scanToolbar(tb, id, ptrSize, logger)
		if err != nil {
			logger.Debug("toolbar scan aborted", "toolbar", i, "error", err)
			return screen.Rect{}, err
		}
		if !m.found {
			continue
		}
		if !m.hidden {
			return m.rect, nil
		}
		if !tolerateHidden {
			return screen.Rect{}, notifyicon.ErrHidden
		}
		r, ok := h.OverflowButton()
		if !ok {
			return screen.Rect{}, fmt.Errorf("%w: overflow button not found", notifyicon.ErrHidden)
		}
		return r, nil
	}
	return screen.Rect{}, notifyicon.ErrNotFound
}

func scanToolbar(tb Toolbar, id notifyicon.Identifier, ptrSize int, logger *slog.Logger) (match, error) {
	n := tb.ButtonCount()
	if n <= 0 {
		return match{}, nil
	}

	ch, err := tb.Open()
	if err != nil {
		return match{}, err
	}
	defer func() {
		if err := ch.Close(); err != nil {
			logger.Warn("release toolbar scratch buffer", "error", err)
		}
	}()

	rd := reader{ch: ch, ptrSize: ptrSize}
	for i := 0; i < n; i++ {
		b, err := rd.button(i)
		if err != nil {
			return match{}, err
		}
		if b.Icon != id {
			continue
		}
		if b.Hidden {
			return match{found: true, hidden: true}, nil
		}
		r, err := rd.itemRect(i)
		if err != nil {
			return match{}, err
		}
		return match{found: true, rect: tb.ToScreen(r)}, nil
	}
	return match{}, nil
}

// Strategy runs Scan against a Host.
type Strategy struct {
	host   Host
	logger *slog.Logger
}

type Option func(*Strategy)

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Strategy) { s.logger = l }
}

// New returns a Strategy over the running shell's toolbars.
func New(opts ...Option) *Strategy {
	return NewWithHost(systemHost{}, opts...)
}

// NewWithHost returns a Strategy over h.
func NewWithHost(h Host, opts ...Option) *Strategy {
	s := &Strategy{host: h, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Supported is always true; a shell without readable toolbars fails the
// scan instead.
func (s *Strategy) Supported() bool { return true }

func (s *Strategy) Locate(id notifyicon.Identifier, tolerateHidden bool) (screen.Rect, error) {
	return Scan(s.host, id, tolerateHidden, s.logger)
}
