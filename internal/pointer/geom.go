package pointer

import "fmt"

// Point is a position in view coordinates. Terminal front ends use whole
// cells; the engine itself works in float64 so density scaling stays exact.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Rect is a half-open rectangle [Min, Max).
type Rect struct {
	Min, Max Point
}

func R(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Min: Point{X: x0, Y: y0}, Max: Point{X: x1, Y: y1}}
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

func (r Rect) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X < r.Max.X && r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// MidY is the vertical midpoint, used for drag-reorder crossing checks.
func (r Rect) MidY() float64 { return r.Min.Y + r.Dy()/2 }

// Translate moves r by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// OnHorizontalEdge reports whether p lies exactly on the left or right
// boundary of r. Presses there belong to edge-scroll gestures.
func (r Rect) OnHorizontalEdge(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X == r.Min.X || p.X == r.Max.X
}

func (r Rect) String() string { return fmt.Sprintf("%v-%v", r.Min, r.Max) }
