package trayloc

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpdg/trayloc/notifyicon"
	"github.com/rpdg/trayloc/probe"
	"github.com/rpdg/trayloc/screen"
	"github.com/rpdg/trayloc/taskbar"
	"github.com/rpdg/trayloc/toolbar"
)

// calls records the order strategies run in.
type calls []string

func (c *calls) add(format string, args ...any) {
	*c = append(*c, fmt.Sprintf(format, args...))
}

type fakeStrategy struct {
	name      string
	supported bool
	log       *calls

	// result per tolerateHidden value
	rect map[bool]screen.Rect
	err  map[bool]error
}

func (f *fakeStrategy) Supported() bool { return f.supported }

func (f *fakeStrategy) Locate(id notifyicon.Identifier, tolerateHidden bool) (screen.Rect, error) {
	f.log.add("%s:%t", f.name, tolerateHidden)
	if err := f.err[tolerateHidden]; err != nil {
		return screen.Rect{}, err
	}
	return f.rect[tolerateHidden], nil
}

type fakeIcon struct {
	id    notifyicon.Identifier
	hasID bool
	img   image.Image
}

func (i *fakeIcon) Identifier() (notifyicon.Identifier, bool) { return i.id, i.hasID }
func (i *fakeIcon) Image() image.Image                        { return i.img }

func (i *fakeIcon) SetImage(img image.Image) error {
	i.img = img
	return nil
}

func newIcon() *fakeIcon {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 200, A: 255}), image.Point{}, draw.Src)
	return &fakeIcon{id: notifyicon.Identifier{Owner: 0x1F00, ID: 1}, hasID: true, img: img}
}

// desktop draws the icon at (8, 2) inside a notification area at (1000, 700).
type desktop struct {
	log   *calls
	icon  *fakeIcon
	known bool
}

func (d *desktop) NotifyAreaRect() (screen.Rect, bool) {
	return screen.RectFromSize(1000, 700, 100, 40), d.known
}

func (d *desktop) ForegroundIsFullScreen() bool {
	d.log.add("probe")
	return false
}

func (d *desktop) Capture(r screen.Rect) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, int(r.Width()), int(r.Height())))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 40, G: 40, B: 40, A: 255}), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(8, 2, 24, 18), d.icon.img, image.Point{}, draw.Src)
	return img, nil
}

type constRand int

func (r constRand) Intn(int) int { return int(r) }

var probed = screen.RectFromSize(1004, 702, 16, 16)

type fixture struct {
	log    *calls
	icon   *fakeIcon
	native *fakeStrategy
	legacy *fakeStrategy
	desk   *desktop
}

func newFixture() *fixture {
	log := &calls{}
	icon := newIcon()
	return &fixture{
		log:    log,
		icon:   icon,
		native: &fakeStrategy{name: "native", supported: true, log: log},
		legacy: &fakeStrategy{name: "legacy", supported: true, log: log},
		desk:   &desktop{log: log, icon: icon, known: true},
	}
}

func (f *fixture) resolver(opts ...Option) *Resolver {
	p := probe.New(f.desk, probe.WithRand(constRand(20)))
	base := []Option{WithNative(f.native), WithLegacy(f.legacy), WithProber(p)}
	return New(append(base, opts...)...)
}

func TestNativeWins(t *testing.T) {
	f := newFixture()
	want := screen.RectFromSize(1800, 1050, 16, 16)
	f.native.rect = map[bool]screen.Rect{false: want}

	got, err := f.resolver().Locate(f.icon, 0, false)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, calls{"native:false"}, *f.log)
}

func TestLegacyOnlyWithoutNative(t *testing.T) {
	f := newFixture()
	f.native.supported = false
	want := screen.RectFromSize(1800, 1050, 24, 30)
	f.legacy.rect = map[bool]screen.Rect{true: want}

	got, err := f.resolver().Locate(f.icon, 0, true)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, calls{"legacy:true"}, *f.log)
}

func TestLegacyMismatchFallsBackToProbe(t *testing.T) {
	f := newFixture()
	f.native.supported = false
	f.legacy.err = map[bool]error{
		false: fmt.Errorf("%w: button read 28 bytes, want 32", toolbar.ErrLayoutMismatch),
		true:  toolbar.ErrLayoutMismatch,
	}

	got, err := f.resolver().Locate(f.icon, 0, false)
	require.NoError(t, err)
	require.Equal(t, probed, got)
	require.Equal(t, calls{"legacy:false", "probe"}, *f.log)
}

func TestConfirmedAbsenceSkipsProbe(t *testing.T) {
	f := newFixture()
	f.native.err = map[bool]error{false: notifyicon.ErrNotFound, true: notifyicon.ErrNotFound}

	_, err := f.resolver().Locate(f.icon, 0, false)
	require.ErrorIs(t, err, ErrIconNotFound)
	require.Equal(t, calls{"native:false", "native:true"}, *f.log)
}

func TestHiddenIconGoesToProbe(t *testing.T) {
	f := newFixture()
	f.native.err = map[bool]error{false: notifyicon.ErrHidden}

	got, err := f.resolver().Locate(f.icon, 0, false)
	require.NoError(t, err)
	require.Equal(t, probed, got)
	require.Equal(t, calls{"native:false", "probe"}, *f.log)
}

func TestUnconfirmedAbsenceGoesToProbe(t *testing.T) {
	f := newFixture()
	f.native.err = map[bool]error{false: notifyicon.ErrNotFound, true: notifyicon.ErrHidden}

	_, err := f.resolver().Locate(f.icon, 0, false)
	require.NoError(t, err)
	require.Equal(t, calls{"native:false", "native:true", "probe"}, *f.log)
}

func TestTolerantNotFoundGoesToProbe(t *testing.T) {
	f := newFixture()
	f.native.err = map[bool]error{true: notifyicon.ErrNotFound}

	_, err := f.resolver().Locate(f.icon, 0, true)
	require.NoError(t, err)
	require.Equal(t, calls{"native:true", "probe"}, *f.log)
}

func TestNoIdentifierIsProbeOnly(t *testing.T) {
	f := newFixture()
	f.icon.hasID = false

	got, err := f.resolver().Locate(f.icon, 0, false)
	require.NoError(t, err)
	require.Equal(t, probed, got)
	require.Equal(t, calls{"probe"}, *f.log)
}

func TestNoStructuralStrategy(t *testing.T) {
	f := newFixture()
	f.native.supported = false
	f.legacy.supported = false

	_, err := f.resolver().Locate(f.icon, 0, false)
	require.NoError(t, err)
	require.Equal(t, calls{"probe"}, *f.log)
}

func TestNegativeAccuracy(t *testing.T) {
	f := newFixture()
	_, err := f.resolver().Locate(f.icon, -1, false)
	require.ErrorIs(t, err, ErrInvalidAccuracy)
	require.Empty(t, *f.log)
}

func TestProbeFailureIsNotFound(t *testing.T) {
	f := newFixture()
	f.native.supported = false
	f.legacy.supported = false
	f.desk.known = false

	_, err := f.resolver().Locate(f.icon, 0, false)
	require.ErrorIs(t, err, ErrIconNotFound)
}

type bottomTaskbar struct{}

func (bottomTaskbar) AppBarMessage(msg uint32, data *taskbar.AppBarData) (uintptr, bool) {
	if msg == taskbar.MsgGetTaskbarPos {
		data.Edge = uint32(taskbar.EdgeBottom)
		data.Rect = screen.Rect{Left: 0, Top: 1040, Right: 1920, Bottom: 1080}
	}
	return 1, true
}

func (bottomTaskbar) WindowRect(...string) (screen.Rect, bool) { return screen.Rect{}, false }
func (bottomTaskbar) ForegroundClass() string                  { return "" }
func (bottomTaskbar) Cursor() (screen.Point, bool)             { return screen.Point{}, false }

func TestInFlyoutAndContainsPoint(t *testing.T) {
	f := newFixture()
	flyout := screen.RectFromSize(1700, 960, 24, 24)
	f.native.rect = map[bool]screen.Rect{true: flyout}
	r := f.resolver(WithTaskbar(taskbar.NewWithShell(bottomTaskbar{})))

	in, err := r.InFlyout(f.icon)
	require.NoError(t, err)
	require.True(t, in)

	hit, err := r.ContainsPoint(f.icon, screen.Point{X: 1710, Y: 970})
	require.NoError(t, err)
	require.True(t, hit)

	hit, err = r.ContainsPoint(f.icon, screen.Point{X: 1710, Y: 1050})
	require.NoError(t, err)
	require.False(t, hit)

	f.native.rect = map[bool]screen.Rect{true: screen.RectFromSize(1700, 1048, 24, 24)}
	in, err = r.InFlyout(f.icon)
	require.NoError(t, err)
	require.False(t, in)
	require.Equal(t, calls{"native:true", "native:true", "native:true", "native:true"}, *f.log)
}

func TestInFlyoutNeedsStructuralQuery(t *testing.T) {
	f := newFixture()
	f.native.supported = false
	f.legacy.supported = false

	_, err := f.resolver().InFlyout(f.icon)
	require.ErrorIs(t, err, ErrNoStructuralQuery)

	f.native.supported = true
	_, err = f.resolver().ContainsPoint(notifyicon.Static{}, screen.Point{})
	require.ErrorIs(t, err, notifyicon.ErrNoIdentifier)
}
