package mouse

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpdg/trayloc/screen"
)

func TestDecode(t *testing.T) {
	pt := screen.Point{X: 1710, Y: 1050}
	cases := []struct {
		msg  uint32
		data uint32
		want Event
	}{
		{WM_MOUSEMOVE, 0, Event{Action: ActionMove, Pt: pt}},
		{WM_LBUTTONDOWN, 0, Event{Action: ActionDown, Button: ButtonLeft, Pt: pt}},
		{WM_RBUTTONUP, 0, Event{Action: ActionUp, Button: ButtonRight, Pt: pt}},
		{WM_MBUTTONDOWN, 0, Event{Action: ActionDown, Button: ButtonMiddle, Pt: pt}},
		{WM_MOUSEWHEEL, 0xFF88_0000, Event{Action: ActionWheel, Pt: pt, Delta: -120}},
	}
	for _, tc := range cases {
		got, ok := decode(tc.msg, pt, tc.data)
		require.True(t, ok, "msg %#x", tc.msg)
		require.Equal(t, tc.want, got)
	}

	_, ok := decode(0x020E, pt, 0) // WM_MOUSEHWHEEL
	require.False(t, ok)
}

// fakeHook replaces the platform hook for the duration of a test.
func fakeHook(t *testing.T) *func(Event) {
	var h func(Event)
	prev := installHook
	installHook = func(handler Handler) (func() error, error) {
		h = handler
		return func() error { h = nil; return nil }, nil
	}
	t.Cleanup(func() {
		installHook = prev
		if Running() {
			Stop()
		}
	})
	return &h
}

func TestHookLifecycle(t *testing.T) {
	h := fakeHook(t)

	require.ErrorIs(t, Stop(), ErrHookInactive)
	require.False(t, Running())

	var got []Event
	require.NoError(t, Start(func(e Event) { got = append(got, e) }))
	require.True(t, Running())
	require.ErrorIs(t, Start(func(Event) {}), ErrHookActive)

	(*h)(Event{Action: ActionDown, Button: ButtonLeft})
	require.Len(t, got, 1)

	require.NoError(t, Stop())
	require.False(t, Running())
	require.Nil(t, *h)

	require.NoError(t, Start(func(Event) {}), "restart after stop")
	require.NoError(t, Stop())
}

func TestHookInstallFailure(t *testing.T) {
	prev := installHook
	t.Cleanup(func() { installHook = prev })
	boom := errors.New("SetWindowsHookExW failed")
	installHook = func(Handler) (func() error, error) { return nil, boom }

	require.ErrorIs(t, Start(func(Event) {}), boom)
	require.False(t, Running())
}

type holds struct {
	mu  sync.Mutex
	got []Button
	pts []screen.Point
}

func (h *holds) record(b Button, pt screen.Point) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.got = append(h.got, b)
	h.pts = append(h.pts, pt)
}

func (h *holds) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.got)
}

func TestHoldDetectorFires(t *testing.T) {
	var rec holds
	d := NewHoldDetector(20*time.Millisecond, rec.record)

	d.Handle(Event{Action: ActionDown, Button: ButtonRight, Pt: screen.Point{X: 5, Y: 5}})
	d.Handle(Event{Action: ActionMove, Pt: screen.Point{X: 7, Y: 9}})

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, []Button{ButtonRight}, rec.got)
	require.Equal(t, []screen.Point{{X: 7, Y: 9}}, rec.pts)

	// One press fires once.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, rec.count())
}

func TestHoldDetectorCancelledByRelease(t *testing.T) {
	var rec holds
	d := NewHoldDetector(30*time.Millisecond, rec.record)

	d.Handle(Event{Action: ActionDown, Button: ButtonLeft})
	d.Handle(Event{Action: ActionUp, Button: ButtonLeft})
	time.Sleep(80 * time.Millisecond)
	require.Zero(t, rec.count())

	d.Handle(Event{Action: ActionDown, Button: ButtonLeft})
	d.Cancel()
	time.Sleep(80 * time.Millisecond)
	require.Zero(t, rec.count())
}
