// Package probe finds a notification-area icon without any help from the
// shell: it paints a random signal color into the icon, captures the
// notification area and looks for the signal.
package probe

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rpdg/trayloc/notifyicon"
	"github.com/rpdg/trayloc/screen"
)

var (
	// ErrInvalidAccuracy implies a negative accuracy was requested.
	ErrInvalidAccuracy = errors.New("probe accuracy must not be negative")

	// ErrFullScreen implies a full-screen window covers the notification area.
	ErrFullScreen = errors.New("foreground window is full-screen")

	// ErrNotifyAreaUnknown implies the notification area rectangle is unavailable.
	ErrNotifyAreaUnknown = errors.New("notification area rectangle unknown")

	// ErrCaptureFailed implies the screen could not be read.
	ErrCaptureFailed = errors.New("notification area capture failed")
)

const (
	maxAttempts = 5

	// Offset from a match back to the icon's top-left corner.
	matchOffsetX = 16
	matchOffsetY = 14
)

// Environment is what the probe needs from the desktop.
type Environment interface {
	NotifyAreaRect() (screen.Rect, bool)
	ForegroundIsFullScreen() bool
	Capture(r screen.Rect) (*image.RGBA, error)
}

// Canvas is an icon whose image can be swapped. notifyicon.Icon satisfies it.
type Canvas interface {
	Image() image.Image
	SetImage(img image.Image) error
}

// Rand is the random source for signal colors.
type Rand interface {
	Intn(n int) int
}

// Prober runs color probes. It is not safe for concurrent use; two probes
// on the same icon would overwrite each other's signal.
type Prober struct {
	env    Environment
	rng    Rand
	logger *slog.Logger

	near *screen.Color
}

type Option func(*Prober)

// WithRand replaces the time-seeded random source.
func WithRand(r Rand) Option {
	return func(p *Prober) { p.rng = r }
}

// WithLogger sets the logger for attempt diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Prober) { p.logger = l }
}

func New(env Environment, opts ...Option) *Prober {
	p := &Prober{
		env:    env,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Prime samples the notification area background once and keeps it for
// every later Locate call. It reports whether a sample was taken.
func (p *Prober) Prime() bool {
	c, ok := p.sampleNear()
	if !ok {
		return false
	}
	p.near = &c
	return true
}

// sampleNear reads one pixel just inside the trailing edge of the
// notification area.
func (p *Prober) sampleNear() (screen.Color, bool) {
	area, ok := p.env.NotifyAreaRect()
	if !ok || area.Empty() {
		return screen.Color{}, false
	}
	img, err := p.env.Capture(area)
	if err != nil || img == nil {
		return screen.Color{}, false
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	x, y := w/2, h-3
	if w > h {
		x, y = w-3, h/2
	}
	if x < 0 || y < 0 || x >= w || y >= h {
		return screen.Color{}, false
	}
	return screen.ColorAt(img, x, y), true
}

// session is the state of one Locate call.
type session struct {
	near     *screen.Color
	attempts int
	hits     int
	last     image.Point
}

func (s *session) record(pt image.Point, ok bool) {
	s.attempts++
	if !ok {
		s.hits = 0
		s.last = image.Pt(-1, -1)
		return
	}
	s.hits++
	s.last = pt
}

// Locate returns the icon's rectangle. accuracy+1 consecutive matches are
// required before the search stops early; the result is the last match
// after at most five attempts. tolerateHidden does not change the search,
// which only ever sees the notification area.
func (p *Prober) Locate(icon Canvas, accuracy int, tolerateHidden bool) (screen.Rect, error) {
	if accuracy < 0 {
		return screen.Rect{}, fmt.Errorf("%w: %d", ErrInvalidAccuracy, accuracy)
	}
	if p.env.ForegroundIsFullScreen() {
		return screen.Rect{}, ErrFullScreen
	}
	area, ok := p.env.NotifyAreaRect()
	if !ok || area.Empty() {
		return screen.Rect{}, ErrNotifyAreaUnknown
	}

	original := icon.Image()
	if original == nil {
		return screen.Rect{}, errors.New("icon has no image")
	}

	s := &session{near: p.near, last: image.Pt(-1, -1)}
	if s.near == nil {
		if c, ok := p.sampleNear(); ok {
			s.near = &c
		}
	}

	target := accuracy + 1
	for s.attempts < maxAttempts && s.hits < target {
		signal := p.signalColor(s.near)

		img, err := p.attempt(icon, original, signal, area)
		if err != nil {
			return screen.Rect{}, err
		}

		pt, found := findSignal(img, signal)
		s.record(pt, found)
		p.logger.Debug("probe attempt", "attempt", s.attempts, "signal", signal, "found", found, "hits", s.hits)
	}

	if s.last.X < 0 || s.last.Y < 0 {
		return screen.Rect{}, notifyicon.ErrNotFound
	}
	size := original.Bounds().Size()
	return screen.RectFromSize(
		area.Left+int32(s.last.X-matchOffsetX),
		area.Top+int32(s.last.Y-matchOffsetY),
		int32(size.X), int32(size.Y),
	), nil
}

// attempt shows the signal, captures the notification area and puts the
// original image back whatever happened.
func (p *Prober) attempt(icon Canvas, original image.Image, signal screen.Color, area screen.Rect) (img *image.RGBA, err error) {
	defer func() {
		if rerr := icon.SetImage(original); rerr != nil {
			p.logger.Warn("restore icon image", "error", rerr)
			if err == nil {
				err = fmt.Errorf("restore icon image: %w", rerr)
			}
		}
	}()

	if err := icon.SetImage(paintSignal(original, signal)); err != nil {
		return nil, fmt.Errorf("show signal: %w", err)
	}
	img, err = p.env.Capture(area)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	if img == nil {
		return nil, ErrCaptureFailed
	}
	return img, nil
}
