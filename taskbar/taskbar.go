// Package taskbar reads the shell's taskbar geometry through the app-bar
// channel and derives the notification area from the taskbar's windows.
// Nothing is cached: every call asks the shell again.
package taskbar

import (
	"github.com/rpdg/trayloc/screen"
)

// Edge is the screen edge the taskbar is docked to.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom

	// EdgeUnknown means the taskbar could not be queried.
	EdgeUnknown Edge = -1
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	}
	return "unknown"
}

// Vertical reports whether a taskbar on this edge lays icons out top to bottom.
func (e Edge) Vertical() bool {
	return e == EdgeLeft || e == EdgeRight
}

// State holds the taskbar's auto-hide and always-on-top flags.
type State uint32

const (
	StateNone      State = 0
	StateAutoHide  State = 1
	StateAlwaysTop State = 2
)

func (s State) AutoHide() bool  { return s&StateAutoHide != 0 }
func (s State) AlwaysTop() bool { return s&StateAlwaysTop != 0 }

// App-bar messages understood by Shell.AppBarMessage.
const (
	MsgGetState      uint32 = 0x04
	MsgGetTaskbarPos uint32 = 0x05
	MsgSetState      uint32 = 0x0A
)

// AppBarData is the descriptor exchanged over the app-bar channel.
type AppBarData struct {
	Edge   uint32
	Rect   screen.Rect
	LParam uintptr
}

// Descriptor is one consistent snapshot of the taskbar.
type Descriptor struct {
	Edge  Edge
	State State
	Rect  screen.Rect
}

// Known reports whether the taskbar geometry could be determined.
func (d Descriptor) Known() bool {
	return !d.Rect.Empty() && d.Edge != EdgeUnknown
}

// Shell is the boundary to the window manager.
type Shell interface {
	// AppBarMessage sends msg for the taskbar window and returns the raw
	// result. ok is false when the taskbar window cannot be found.
	AppBarMessage(msg uint32, data *AppBarData) (ret uintptr, ok bool)

	// WindowRect finds the window reached by following classes from a
	// top-level window down through direct children and returns its screen
	// rectangle.
	WindowRect(classes ...string) (screen.Rect, bool)

	// Foreground returns the class of the foreground window.
	ForegroundClass() string

	// Cursor returns the cursor position in screen coordinates.
	Cursor() (screen.Point, bool)
}

// Window classes of the shell's taskbar hierarchy.
const (
	ClassTaskbar        = "Shell_TrayWnd"
	ClassNotifyArea     = "TrayNotifyWnd"
	ClassOverflowButton = "Button"
	ClassOverflowWindow = "NotifyIconOverflowWindow"
	ClassToolbar        = "ToolbarWindow32"
)

// Info answers taskbar questions against a Shell.
type Info struct {
	shell Shell
}

// New returns an Info backed by the running shell.
func New() *Info {
	return &Info{shell: systemShell{}}
}

// NewWithShell returns an Info backed by s.
func NewWithShell(s Shell) *Info {
	return &Info{shell: s}
}

// Describe queries edge, rectangle and state.
func (i *Info) Describe() Descriptor {
	var d AppBarData
	ret, ok := i.shell.AppBarMessage(MsgGetTaskbarPos, &d)
	if !ok || ret == 0 {
		return Descriptor{Edge: EdgeUnknown, State: i.State()}
	}
	edge := Edge(d.Edge)
	if edge < EdgeLeft || edge > EdgeBottom {
		edge = EdgeUnknown
	}
	return Descriptor{Edge: edge, State: i.State(), Rect: d.Rect}
}

// Rect returns the taskbar rectangle; empty when unknown.
func (i *Info) Rect() screen.Rect {
	var d AppBarData
	ret, ok := i.shell.AppBarMessage(MsgGetTaskbarPos, &d)
	if !ok || ret == 0 {
		return screen.Rect{}
	}
	return d.Rect
}

func (i *Info) Location() screen.Point {
	return i.Rect().Location()
}

func (i *Info) Size() (width, height int32) {
	r := i.Rect()
	return r.Width(), r.Height()
}

// Edge returns the docked edge, or EdgeUnknown.
func (i *Info) Edge() Edge {
	return i.Describe().Edge
}

// State returns the auto-hide / always-on-top flags.
func (i *Info) State() State {
	var d AppBarData
	ret, ok := i.shell.AppBarMessage(MsgGetState, &d)
	if !ok {
		return StateNone
	}
	return State(ret)
}

// SetState writes the auto-hide / always-on-top flags.
func (i *Info) SetState(s State) {
	d := AppBarData{LParam: uintptr(s)}
	i.shell.AppBarMessage(MsgSetState, &d)
}

// EffectivelyHidden reports whether an auto-hiding taskbar is currently
// tucked away, i.e. the cursor is not over it.
func EffectivelyHidden(d Descriptor, cursor screen.Point) bool {
	return d.State.AutoHide() && !d.Rect.Contains(cursor)
}

// Hidden is EffectivelyHidden for the live taskbar and cursor.
func (i *Info) Hidden() bool {
	d := i.Describe()
	if !d.State.AutoHide() {
		return false
	}
	pt, ok := i.shell.Cursor()
	if !ok {
		return false
	}
	return EffectivelyHidden(d, pt)
}
