package geometry

import "math"

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func emptyRect() Rect {
	return Rect{
		Min: Pt(math.Inf(1), math.Inf(1)),
		Max: Pt(math.Inf(-1), math.Inf(-1)),
	}
}

func (r Rect) extend(p Point) Rect {
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
	return r
}

// QuadBez is a quadratic Bezier segment.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at t.
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	return q.P0.Mul(mt * mt).Add(q.P1.Mul(2 * mt * t)).Add(q.P2.Mul(t * t))
}

// CubicBez is a cubic Bezier segment.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at t.
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	mt2 := mt * mt
	t2 := t * t
	return c.P0.Mul(mt2 * mt).
		Add(c.P1.Mul(3 * mt2 * t)).
		Add(c.P2.Mul(3 * mt * t2)).
		Add(c.P3.Mul(t2 * t))
}
