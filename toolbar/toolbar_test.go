package toolbar

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpdg/trayloc/notifyicon"
	"github.com/rpdg/trayloc/screen"
)

type fakeButton struct {
	hidden bool
	icon   notifyicon.Identifier
	rect   screen.Rect
}

// fakeToolbar lays out TBBUTTON records and icon records in a fake foreign
// address space the same way the shell does.
type fakeToolbar struct {
	ptrSize int
	buttons []fakeButton
	origin  screen.Point
	openErr error

	// truncate shortens the record read for the button at this index.
	truncate int

	opened  int
	closed  int
	reads   []int
	records map[uintptr][]byte
}

func newFakeToolbar(ptrSize int, buttons ...fakeButton) *fakeToolbar {
	return &fakeToolbar{ptrSize: ptrSize, buttons: buttons, truncate: -1, origin: screen.Point{X: 1700, Y: 1040}}
}

func (t *fakeToolbar) ButtonCount() int { return len(t.buttons) }

func (t *fakeToolbar) Open() (Channel, error) {
	if t.openErr != nil {
		return nil, t.openErr
	}
	t.opened++
	t.records = map[uintptr][]byte{}
	for i, b := range t.buttons {
		rec := make([]byte, linkageSize(t.ptrSize))
		putPointer(rec, t.ptrSize, b.icon.Owner)
		binary.LittleEndian.PutUint32(rec[t.ptrSize:], b.icon.ID)
		t.records[recordAddr(i)] = rec
	}
	return &fakeChannel{tb: t}, nil
}

func (t *fakeToolbar) ToScreen(r screen.Rect) screen.Rect {
	return screen.Rect{
		Left:   r.Left + t.origin.X,
		Top:    r.Top + t.origin.Y,
		Right:  r.Right + t.origin.X,
		Bottom: r.Bottom + t.origin.Y,
	}
}

func recordAddr(i int) uintptr { return uintptr(0x10000 + i*0x100) }

func putPointer(b []byte, ptrSize int, v uintptr) {
	if ptrSize == 8 {
		binary.LittleEndian.PutUint64(b, uint64(v))
		return
	}
	binary.LittleEndian.PutUint32(b, uint32(v))
}

type fakeChannel struct {
	tb *fakeToolbar
}

func (c *fakeChannel) Button(i int) ([]byte, error) {
	c.tb.reads = append(c.tb.reads, i)
	b := make([]byte, buttonSize(c.tb.ptrSize))
	if c.tb.buttons[i].hidden {
		b[8] = stateHidden
	}
	putPointer(b[8+c.tb.ptrSize:], c.tb.ptrSize, recordAddr(i))
	if i == c.tb.truncate {
		return b[:len(b)-4], nil
	}
	return b, nil
}

func (c *fakeChannel) ItemRect(i int) ([]byte, error) {
	r := c.tb.buttons[i].rect
	b := make([]byte, rectSize)
	for j, v := range []int32{r.Left, r.Top, r.Right, r.Bottom} {
		binary.LittleEndian.PutUint32(b[j*4:], uint32(v))
	}
	return b, nil
}

func (c *fakeChannel) Read(addr uintptr, size int) ([]byte, error) {
	rec, ok := c.tb.records[addr]
	if !ok {
		return nil, errors.New("bad address")
	}
	if size > len(rec) {
		size = len(rec)
	}
	return rec[:size], nil
}

func (c *fakeChannel) Close() error {
	c.tb.closed++
	return nil
}

type fakeHost struct {
	ptrSize  int
	toolbars []*fakeToolbar
	overflow screen.Rect
}

func (h *fakeHost) Toolbars() ([]Toolbar, error) {
	out := make([]Toolbar, len(h.toolbars))
	for i, t := range h.toolbars {
		out[i] = t
	}
	return out, nil
}

func (h *fakeHost) OverflowButton() (screen.Rect, bool) {
	return h.overflow, !h.overflow.Empty()
}

func (h *fakeHost) PointerSize() int { return h.ptrSize }

var (
	target = notifyicon.Identifier{Owner: 0x40A1C, ID: 7}
	other  = notifyicon.Identifier{Owner: 0x40A1C, ID: 8}
)

func TestScanFindsVisibleButton(t *testing.T) {
	for _, ptrSize := range []int{4, 8} {
		tb := newFakeToolbar(ptrSize,
			fakeButton{icon: other, rect: screen.RectFromSize(0, 0, 24, 30)},
			fakeButton{icon: target, rect: screen.RectFromSize(24, 0, 24, 30)},
		)
		h := &fakeHost{ptrSize: ptrSize, toolbars: []*fakeToolbar{tb}}

		r, err := Scan(h, target, false, nil)
		require.NoError(t, err, "pointer size %d", ptrSize)
		require.Equal(t, screen.RectFromSize(1724, 1040, 24, 30), r)
		require.Equal(t, 1, tb.opened)
		require.Equal(t, 1, tb.closed)
	}
}

func TestScanSearchesLaterToolbars(t *testing.T) {
	first := newFakeToolbar(8, fakeButton{icon: other, rect: screen.RectFromSize(0, 0, 24, 30)})
	empty := newFakeToolbar(8)
	second := newFakeToolbar(8, fakeButton{icon: target, rect: screen.RectFromSize(0, 0, 24, 30)})
	second.origin = screen.Point{X: 900, Y: 500}
	h := &fakeHost{ptrSize: 8, toolbars: []*fakeToolbar{first, empty, second}}

	r, err := Scan(h, target, false, nil)
	require.NoError(t, err)
	require.Equal(t, screen.RectFromSize(900, 500, 24, 30), r)
	require.Equal(t, 1, first.closed)
	require.Zero(t, empty.opened)
	require.Equal(t, 1, second.closed)
}

func TestScanNotFound(t *testing.T) {
	tb := newFakeToolbar(8, fakeButton{icon: other, rect: screen.RectFromSize(0, 0, 24, 30)})
	h := &fakeHost{ptrSize: 8, toolbars: []*fakeToolbar{tb}}

	_, err := Scan(h, target, true, nil)
	require.ErrorIs(t, err, notifyicon.ErrNotFound)
	require.False(t, errors.Is(err, notifyicon.ErrHidden))
	require.Equal(t, tb.opened, tb.closed)
}

func TestScanHiddenButton(t *testing.T) {
	overflow := screen.RectFromSize(1650, 1040, 24, 40)
	newHost := func() *fakeHost {
		tb := newFakeToolbar(4, fakeButton{icon: target, hidden: true, rect: screen.RectFromSize(0, 0, 24, 30)})
		return &fakeHost{ptrSize: 4, toolbars: []*fakeToolbar{tb}, overflow: overflow}
	}

	_, err := Scan(newHost(), target, false, nil)
	require.ErrorIs(t, err, notifyicon.ErrHidden)

	r, err := Scan(newHost(), target, true, nil)
	require.NoError(t, err)
	require.Equal(t, overflow, r)

	h := newHost()
	h.overflow = screen.Rect{}
	_, err = Scan(h, target, true, nil)
	require.ErrorIs(t, err, notifyicon.ErrHidden)
}

func TestScanLayoutMismatchAbortsEverything(t *testing.T) {
	first := newFakeToolbar(8,
		fakeButton{icon: other},
		fakeButton{icon: other},
		fakeButton{icon: target, rect: screen.RectFromSize(0, 0, 24, 30)},
	)
	first.truncate = 1
	second := newFakeToolbar(8, fakeButton{icon: target, rect: screen.RectFromSize(0, 0, 24, 30)})
	h := &fakeHost{ptrSize: 8, toolbars: []*fakeToolbar{first, second}}

	r, err := Scan(h, target, true, nil)
	require.ErrorIs(t, err, ErrLayoutMismatch)
	require.False(t, errors.Is(err, notifyicon.ErrNotFound))
	require.True(t, r.Empty())
	require.Equal(t, []int{0, 1}, first.reads, "no button read after the mismatch")
	require.Equal(t, 1, first.closed, "scratch buffer released on abort")
	require.Zero(t, second.opened)
}

func TestScanPointerWidthMismatch(t *testing.T) {
	// A 4-byte host reading records laid out for 8-byte pointers.
	tb := newFakeToolbar(8, fakeButton{icon: target, rect: screen.RectFromSize(0, 0, 24, 30)})
	h := &fakeHost{ptrSize: 4, toolbars: []*fakeToolbar{tb}}

	_, err := Scan(h, target, true, nil)
	require.ErrorIs(t, err, ErrLayoutMismatch)
	require.Equal(t, 1, tb.closed)
}

func TestScanOpenFailureIsTerminal(t *testing.T) {
	denied := errors.New("access denied")
	first := newFakeToolbar(8, fakeButton{icon: other})
	first.openErr = denied
	second := newFakeToolbar(8, fakeButton{icon: target, rect: screen.RectFromSize(0, 0, 24, 30)})
	h := &fakeHost{ptrSize: 8, toolbars: []*fakeToolbar{first, second}}

	_, err := Scan(h, target, true, nil)
	require.ErrorIs(t, err, denied)
	require.Zero(t, second.opened)
}

func TestScanRequiresIdentifier(t *testing.T) {
	h := &fakeHost{ptrSize: 8}
	_, err := Scan(h, notifyicon.Identifier{}, true, nil)
	require.ErrorIs(t, err, notifyicon.ErrNoIdentifier)

	_, err = Scan(h, target, true, nil)
	require.ErrorIs(t, err, ErrNoToolbars)
}

func TestDecodeButton(t *testing.T) {
	require.Equal(t, 20, buttonSize(4))
	require.Equal(t, 32, buttonSize(8))

	b := make([]byte, 32)
	b[8] = stateHidden | 0x04
	binary.LittleEndian.PutUint64(b[16:], 0x1234_5678)
	raw, err := decodeButton(b, 8)
	require.NoError(t, err)
	require.Equal(t, byte(stateHidden|0x04), raw.state)
	require.Equal(t, uintptr(0x1234_5678), raw.data)

	_, err = decodeButton(b[:20], 8)
	require.ErrorIs(t, err, ErrLayoutMismatch)
	_, err = decodeButton(b, 6)
	require.ErrorIs(t, err, ErrLayoutMismatch)
}

func TestDecodeRect(t *testing.T) {
	b := make([]byte, 16)
	for i, v := range []int32{-10, 4, 14, 28} {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(v))
	}
	l, tp, r, bt, err := decodeRect(b)
	require.NoError(t, err)
	require.Equal(t, []int32{-10, 4, 14, 28}, []int32{l, tp, r, bt})

	_, _, _, _, err = decodeRect(b[:12])
	require.ErrorIs(t, err, ErrLayoutMismatch)
}
