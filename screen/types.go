package screen

// Point represents a point in the Virtual Desktop coordinate system.
// Coordinates can be negative (e.g., secondary monitor to the left of primary).
type Point struct {
	X int32
	Y int32
}

// Rect represents a rectangle in the Virtual Desktop coordinate system.
// Right and Bottom are exclusive.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// RectFromSize builds a Rect from an origin and a size.
func RectFromSize(x, y, width, height int32) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

func (r Rect) Width() int32  { return r.Right - r.Left }
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// Empty reports whether the rectangle has no area. A zero or negative
// width or height never describes a real icon.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

func (r Rect) Location() Point {
	return Point{X: r.Left, Y: r.Top}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Outside reports whether r lies entirely outside of o.
func (r Rect) Outside(o Rect) bool {
	return r.Left > o.Right || r.Right < o.Left || r.Bottom < o.Top || r.Top > o.Bottom
}

// Monitor represents a physical display device.
type Monitor struct {
	Bounds   Rect
	WorkArea Rect // Excludes taskbar
	Primary  bool
}
