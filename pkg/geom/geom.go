// Package geom provides the float64 value types used by the flag layout.
//
// Coordinates follow screen conventions: the origin is the top-left corner
// and y grows downward, so a rectangle's MaxY is its bottom edge.
package geom

import "fmt"

// Point is a 2-D coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

func (p Point) String() string { return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y) }

// Size is a width and height pair.
type Size struct {
	W, H float64
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float64) Size { return Size{W: w, H: h} }

// Area returns W*H.
func (s Size) Area() float64 { return s.W * s.H }

// Mul returns s scaled by k.
func (s Size) Mul(k float64) Size { return Size{s.W * k, s.H * k} }

func (s Size) String() string { return fmt.Sprintf("%.2fx%.2f", s.W, s.H) }

// Rect is an axis-aligned rectangle given by its top-left origin and size.
type Rect struct {
	Origin Point
	Size   Size
}

// R builds a Rect from origin and size components.
func R(x, y, w, h float64) Rect { return Rect{Origin: Point{x, y}, Size: Size{w, h}} }

// CenteredAt returns a rectangle of size s whose center is c.
func CenteredAt(c Point, s Size) Rect {
	return Rect{Origin: Point{c.X - s.W/2, c.Y - s.H/2}, Size: s}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.Origin.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.W }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Origin.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.H }

// Width returns the horizontal span.
func (r Rect) Width() float64 { return r.Size.W }

// Height returns the vertical span.
func (r Rect) Height() float64 { return r.Size.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{r.Origin.X + r.Size.W/2, r.Origin.Y + r.Size.H/2}
}

// BottomRight returns the (MaxX, MaxY) corner.
func (r Rect) BottomRight() Point { return Point{r.MaxX(), r.MaxY()} }

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.Origin = Point{r.Origin.X + dx, r.Origin.Y + dy}
	return r
}

// Mul scales origin and size by k.
func (r Rect) Mul(k float64) Rect {
	return Rect{Origin: r.Origin.Mul(k), Size: r.Size.Mul(k)}
}

// ContainsRect reports whether o lies entirely within r, allowing eps slack
// on every edge.
func (r Rect) ContainsRect(o Rect, eps float64) bool {
	return o.MinX() >= r.MinX()-eps && o.MaxX() <= r.MaxX()+eps &&
		o.MinY() >= r.MinY()-eps && o.MaxY() <= r.MaxY()+eps
}

func (r Rect) String() string { return fmt.Sprintf("%v+%v", r.Origin, r.Size) }
