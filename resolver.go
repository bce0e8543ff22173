package trayloc

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/rpdg/trayloc/notifyicon"
	"github.com/rpdg/trayloc/probe"
	"github.com/rpdg/trayloc/screen"
	"github.com/rpdg/trayloc/taskbar"
)

// Structural locates an icon by its identifier.
type Structural interface {
	Supported() bool
	Locate(id notifyicon.Identifier, tolerateHidden bool) (screen.Rect, error)
}

// Resolver runs the location strategies in priority order. One Resolver
// never runs two resolutions at once.
type Resolver struct {
	mu sync.Mutex

	native  Structural
	legacy  Structural
	custom  bool
	prober  *probe.Prober
	taskbar *taskbar.Info
	logger  *slog.Logger
}

type Option func(*Resolver)

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithNative replaces the shell-query strategy. Passing nil disables it.
func WithNative(s Structural) Option {
	return func(r *Resolver) { r.native, r.custom = s, true }
}

// WithLegacy replaces the toolbar-scan strategy. Passing nil disables it.
func WithLegacy(s Structural) Option {
	return func(r *Resolver) { r.legacy, r.custom = s, true }
}

// WithProber replaces the color probe.
func WithProber(p *probe.Prober) Option {
	return func(r *Resolver) { r.prober = p }
}

// WithTaskbar replaces the taskbar source used by the probe and by InFlyout.
func WithTaskbar(t *taskbar.Info) Option {
	return func(r *Resolver) { r.taskbar = t }
}

// New returns a Resolver wired to the running shell.
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, o := range opts {
		o(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if !r.custom {
		r.native, r.legacy = platformStrategies(r.logger)
	}
	if r.taskbar == nil {
		r.taskbar = taskbar.New()
	}
	if r.prober == nil {
		r.prober = probe.New(probeEnv{r.taskbar}, probe.WithLogger(r.logger))
	}
	return r
}

// structural picks the shell query when the shell exports it and the
// toolbar scan otherwise. Never both.
func (r *Resolver) structural() (Structural, string) {
	if r.native != nil && r.native.Supported() {
		return r.native, "native"
	}
	if r.legacy != nil && r.legacy.Supported() {
		return r.legacy, "legacy"
	}
	return nil, ""
}

// conclusive reports whether err proves the icon is not registered, as
// opposed to hidden or not determinable.
func conclusive(err error) bool {
	return errors.Is(err, notifyicon.ErrNotFound) && !errors.Is(err, notifyicon.ErrHidden)
}

// -----------------------------------------------------------------------------
// Location
// -----------------------------------------------------------------------------

// Locate returns the screen rectangle of icon. accuracy is the number of
// extra consecutive probe matches required if the probe has to run; a
// negative value fails with ErrInvalidAccuracy. Icons hidden in the
// overflow area are only reported when tolerateHidden is set. Every other
// failure is reported as ErrIconNotFound.
func (r *Resolver) Locate(icon notifyicon.Icon, accuracy int, tolerateHidden bool) (screen.Rect, error) {
	if accuracy < 0 {
		return screen.Rect{}, fmt.Errorf("%w: %d", ErrInvalidAccuracy, accuracy)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, hasID := icon.Identifier()
	s, name := r.structural()
	switch {
	case s == nil:
		r.logger.Debug("no structural strategy, probing")
	case !hasID:
		r.logger.Debug("icon identifier unavailable, probing")
	default:
		rect, err := s.Locate(id, tolerateHidden)
		if err == nil {
			r.logger.Debug("icon located", "strategy", name, "icon", id, "rect", rect)
			return rect, nil
		}
		r.logger.Debug("structural strategy failed", "strategy", name, "icon", id, "error", err)

		if !tolerateHidden && conclusive(err) {
			// Absent even when hidden icons count: the probe cannot find it either.
			if _, err := s.Locate(id, true); conclusive(err) {
				return screen.Rect{}, err
			}
		}
	}

	rect, err := r.prober.Locate(icon, accuracy, tolerateHidden)
	switch {
	case err == nil:
		r.logger.Debug("icon located", "strategy", "probe", "rect", rect)
		return rect, nil
	case errors.Is(err, ErrInvalidAccuracy), errors.Is(err, ErrIconNotFound):
		return screen.Rect{}, err
	}
	return screen.Rect{}, fmt.Errorf("%w: %v", ErrIconNotFound, err)
}

// PrimeProbe samples the notification area background for later probes.
func (r *Resolver) PrimeProbe() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prober.Prime()
}

// exactRect asks the structural strategy for the icon's rectangle,
// hidden icons included.
func (r *Resolver) exactRect(icon notifyicon.IdentifierProvider) (screen.Rect, error) {
	s, _ := r.structural()
	if s == nil {
		return screen.Rect{}, ErrNoStructuralQuery
	}
	id, ok := icon.Identifier()
	if !ok {
		return screen.Rect{}, notifyicon.ErrNoIdentifier
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return s.Locate(id, true)
}

// InFlyout reports whether icon currently sits in the overflow fly-out
// rather than on the taskbar.
func (r *Resolver) InFlyout(icon notifyicon.IdentifierProvider) (bool, error) {
	rect, err := r.exactRect(icon)
	if err != nil {
		return false, err
	}
	return r.taskbar.InFlyout(rect), nil
}

// ContainsPoint reports whether pt lies on icon.
func (r *Resolver) ContainsPoint(icon notifyicon.IdentifierProvider, pt screen.Point) (bool, error) {
	rect, err := r.exactRect(icon)
	if err != nil {
		return false, err
	}
	return rect.Contains(pt), nil
}

// probeEnv feeds the probe from the live desktop.
type probeEnv struct {
	tb *taskbar.Info
}

func (e probeEnv) NotifyAreaRect() (screen.Rect, bool) { return e.tb.NotifyAreaRect() }
func (e probeEnv) ForegroundIsFullScreen() bool        { return screen.ForegroundIsFullScreen() }

func (e probeEnv) Capture(rect screen.Rect) (*image.RGBA, error) {
	return screen.CaptureRect(rect)
}
