package geom

import "fmt"

// Point is an integer location or offset in 2D space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Chebyshev returns max(|x|, |y|), the ring index of p on a square spiral
// around the origin.
func (p Point) Chebyshev() int {
	return max(abs(p.X), abs(p.Y))
}

// DistanceSquared returns the squared Euclidean distance of p from the origin.
func (p Point) DistanceSquared() int {
	return p.X*p.X + p.Y*p.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is an integer width and height.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h int) Size {
	return Size{Width: w, Height: h}
}

// IsValid reports whether both dimensions are strictly positive.
func (s Size) IsValid() bool {
	return s.Width > 0 && s.Height > 0
}

// Area returns width * height.
func (s Size) Area() int {
	return s.Width * s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rectangle is an axis-aligned rectangle described by its top-left origin
// and its size.
type Rectangle struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// Rect creates a rectangle from its top-left corner and dimensions.
func Rect(x, y, w, h int) Rectangle {
	return Rectangle{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// CenteredAt returns the rectangle of the given size whose center is c.
// For odd dimensions the extra pixel falls on the right/bottom side, so
// Center() of the result is always c.
func CenteredAt(c Point, s Size) Rectangle {
	return Rectangle{
		Origin: Point{X: c.X - s.Width/2, Y: c.Y - s.Height/2},
		Size:   s,
	}
}

// Left returns the x coordinate of the left edge.
func (r Rectangle) Left() int { return r.Origin.X }

// Top returns the y coordinate of the top edge.
func (r Rectangle) Top() int { return r.Origin.Y }

// Right returns the x coordinate of the right edge.
func (r Rectangle) Right() int { return r.Origin.X + r.Size.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rectangle) Bottom() int { return r.Origin.Y + r.Size.Height }

// Center returns the centroid, floored for odd dimensions.
func (r Rectangle) Center() Point {
	return Point{X: r.Origin.X + r.Size.Width/2, Y: r.Origin.Y + r.Size.Height/2}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rectangle) IsEmpty() bool {
	return !r.Size.IsValid()
}

// Overlaps reports whether r and o share positive interior area on both axes.
// Touching edges do not count.
func (r Rectangle) Overlaps(o Rectangle) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Contains reports whether o lies entirely within r.
func (r Rectangle) Contains(o Rectangle) bool {
	return r.Left() <= o.Left() && o.Right() <= r.Right() &&
		r.Top() <= o.Top() && o.Bottom() <= r.Bottom()
}

// Union returns the smallest rectangle containing both r and o.
// An empty rectangle is the identity.
func (r Rectangle) Union(o Rectangle) Rectangle {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x1, y1 := min(r.Left(), o.Left()), min(r.Top(), o.Top())
	x2, y2 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect(x1, y1, x2-x1, y2-y1)
}

func (r Rectangle) String() string {
	return fmt.Sprintf("%s+%s", r.Origin, r.Size)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
