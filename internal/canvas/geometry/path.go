// Package geometry turns item attributes into vector outlines. Every
// function is pure: the same (type, width, height) always produces the
// same path, so renderers only have to stroke and fill what they get.
package geometry

import (
	"math"
	"strconv"
	"strings"

	"socketBoard/internal/models/whiteboard"
)

type Point = whiteboard.Point

// Pt is a convenience constructor.
func Pt(x, y float64) Point {
	return whiteboard.Pt(x, y)
}

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is an ordered list of path elements.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

func (p *Path) QuadTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{Control1: Pt(c1x, c1y), Control2: Pt(c2x, c2y), Point: pt})
	p.current = pt
}

// HLineTo draws a horizontal line to x.
func (p *Path) HLineTo(x float64) {
	p.LineTo(x, p.current.Y)
}

// VLineTo draws a vertical line to y.
func (p *Path) VLineTo(y float64) {
	p.LineTo(p.current.X, y)
}

func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

func (p *Path) Elements() []PathElement {
	return p.elements
}

func (p *Path) Len() int {
	return len(p.elements)
}

// Polygon builds a closed path through pts.
func Polygon(pts []Point) *Path {
	p := NewPath()
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	if len(pts) > 0 {
		p.Close()
	}
	return p
}

// Polyline builds an open path through pts.
func Polyline(pts []Point) *Path {
	p := Polygon(pts)
	if len(pts) > 0 {
		p.elements = p.elements[:len(p.elements)-1]
		p.current = pts[len(pts)-1]
	}
	return p
}

// Translate returns a copy of the path moved by d.
func (p *Path) Translate(d Point) *Path {
	out := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			out.MoveTo(e.Point.X+d.X, e.Point.Y+d.Y)
		case LineTo:
			out.LineTo(e.Point.X+d.X, e.Point.Y+d.Y)
		case QuadTo:
			out.QuadTo(e.Control.X+d.X, e.Control.Y+d.Y, e.Point.X+d.X, e.Point.Y+d.Y)
		case CubicTo:
			out.CubicTo(e.Control1.X+d.X, e.Control1.Y+d.Y, e.Control2.X+d.X, e.Control2.Y+d.Y, e.Point.X+d.X, e.Point.Y+d.Y)
		case Close:
			out.Close()
		}
	}
	return out
}

// SVG renders the path as an SVG "d" attribute.
func (p *Path) SVG() string {
	var sb strings.Builder
	write := func(cmd byte, pts ...Point) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(cmd)
		for _, pt := range pts {
			sb.WriteByte(' ')
			sb.WriteString(formatFloat(pt.X))
			sb.WriteByte(' ')
			sb.WriteString(formatFloat(pt.Y))
		}
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			write('M', e.Point)
		case LineTo:
			write('L', e.Point)
		case QuadTo:
			write('Q', e.Control, e.Point)
		case CubicTo:
			write('C', e.Control1, e.Control2, e.Point)
		case Close:
			write('Z')
		}
	}
	return sb.String()
}

func formatFloat(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// curveSteps is the sampling density used to bound curved segments.
const curveSteps = 16

// Bounds returns the axis-aligned bounding box of the drawn path.
// Curves are sampled, so the result hugs the outline rather than the
// control polygon.
func (p *Path) Bounds() Rect {
	r := emptyRect()
	var cur Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			cur = e.Point
			r = r.extend(cur)
		case LineTo:
			cur = e.Point
			r = r.extend(cur)
		case QuadTo:
			q := QuadBez{P0: cur, P1: e.Control, P2: e.Point}
			for i := 1; i <= curveSteps; i++ {
				r = r.extend(q.Eval(float64(i) / curveSteps))
			}
			cur = e.Point
		case CubicTo:
			c := CubicBez{P0: cur, P1: e.Control1, P2: e.Control2, P3: e.Point}
			for i := 1; i <= curveSteps; i++ {
				r = r.extend(c.Eval(float64(i) / curveSteps))
			}
			cur = e.Point
		}
	}
	if r.Min.X > r.Max.X {
		return Rect{}
	}
	return r
}

// Flatten approximates the path with polylines, one per subpath.
func (p *Path) Flatten() [][]Point {
	var out [][]Point
	var cur []Point
	var last, start Point
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			last, start = e.Point, e.Point
			cur = append(cur, last)
		case LineTo:
			last = e.Point
			cur = append(cur, last)
		case QuadTo:
			q := QuadBez{P0: last, P1: e.Control, P2: e.Point}
			for i := 1; i <= curveSteps; i++ {
				cur = append(cur, q.Eval(float64(i)/curveSteps))
			}
			last = e.Point
		case CubicTo:
			c := CubicBez{P0: last, P1: e.Control1, P2: e.Control2, P3: e.Point}
			for i := 1; i <= curveSteps; i++ {
				cur = append(cur, c.Eval(float64(i)/curveSteps))
			}
			last = e.Point
		case Close:
			cur = append(cur, start)
			last = start
		}
	}
	flush()
	return out
}
