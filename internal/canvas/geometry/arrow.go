package geometry

import (
	"math"

	"socketBoard/internal/models/whiteboard"
)

// ArrowHeadSize is the tip length in canvas units. It does not scale with
// zoom or with the length of the shaft.
const ArrowHeadSize = 12.0

// ArrowHeadAngle is the half-opening of the head, measured from the
// reversed shaft direction.
const ArrowHeadAngle = math.Pi / 6

const thickArrowWidth = 4.0

type ArrowVariant string

const (
	ArrowStraight ArrowVariant = "straight"
	ArrowCurved   ArrowVariant = "curved"
	ArrowDouble   ArrowVariant = "double"
	ArrowDashed   ArrowVariant = "dashed"
	ArrowThick    ArrowVariant = "thick"
)

// ParseArrowVariant falls back to ArrowStraight for unknown names.
func ParseArrowVariant(s string) ArrowVariant {
	switch v := ArrowVariant(s); v {
	case ArrowCurved, ArrowDouble, ArrowDashed, ArrowThick:
		return v
	}
	return ArrowStraight
}

// Arrow is the renderable geometry of a connector.
type Arrow struct {
	Angle float64
	Shaft *Path
	Heads [][]Point
	// Dash is the stroke dash pattern, nil for a solid shaft.
	Dash []float64
	// StrokeWidth overrides the item's width when non-zero.
	StrokeWidth float64
}

// Direction returns atan2(dy, dx) of the segment.
func Direction(start, end Point) float64 {
	return math.Atan2(end.Y-start.Y, end.X-start.X)
}

// HeadPoints returns the head triangle: the tip followed by the two base
// points, each ArrowHeadSize from the tip at ±30° off the reversed direction.
func HeadPoints(tip Point, angle float64) []Point {
	return []Point{
		tip,
		Pt(tip.X-ArrowHeadSize*math.Cos(angle-ArrowHeadAngle), tip.Y-ArrowHeadSize*math.Sin(angle-ArrowHeadAngle)),
		Pt(tip.X-ArrowHeadSize*math.Cos(angle+ArrowHeadAngle), tip.Y-ArrowHeadSize*math.Sin(angle+ArrowHeadAngle)),
	}
}

// CurveControl is the quadratic control point of a curved arrow: the
// segment midpoint pushed by a quarter of the perpendicular vector.
func CurveControl(start, end Point) Point {
	mid := start.Lerp(end, 0.5)
	d := end.Sub(start)
	return mid.Add(d.Perp().Div(4))
}

// BuildArrow computes the shaft and heads of an arrow between two points.
func BuildArrow(start, end Point, variant ArrowVariant) Arrow {
	angle := Direction(start, end)
	a := Arrow{Angle: angle, Shaft: NewPath()}
	a.Shaft.MoveTo(start.X, start.Y)

	switch variant {
	case ArrowCurved:
		c := CurveControl(start, end)
		a.Shaft.QuadTo(c.X, c.Y, end.X, end.Y)
	default:
		a.Shaft.LineTo(end.X, end.Y)
	}

	a.Heads = append(a.Heads, HeadPoints(end, angle))
	switch variant {
	case ArrowDouble:
		a.Heads = append(a.Heads, HeadPoints(start, angle+math.Pi))
	case ArrowDashed:
		a.Dash = []float64{5, 5}
	case ArrowThick:
		a.StrokeWidth = thickArrowWidth
	}
	return a
}

// Head is a stored arrow's tip decoration. Unfilled heads are stroked
// as an open polyline.
type Head struct {
	Points []Point
	Filled bool
}

// StoredHead builds the tip decoration for a persisted arrow. ArrowHeadLine
// has no decoration and reports false.
func StoredHead(style whiteboard.ArrowHead, tip Point, angle float64) (Head, bool) {
	along := Pt(math.Cos(angle), math.Sin(angle))
	across := along.Perp()
	switch style {
	case whiteboard.ArrowHeadLine:
		return Head{}, false
	case whiteboard.ArrowHeadBar:
		return Head{Points: []Point{tip.Add(across.Mul(8)), tip.Sub(across.Mul(8))}}, true
	case whiteboard.ArrowHeadDiamond:
		return Head{
			Points: []Point{
				tip,
				tip.Sub(along.Mul(8)).Add(across.Mul(8)),
				tip.Sub(along.Mul(16)),
				tip.Sub(along.Mul(8)).Sub(across.Mul(8)),
			},
			Filled: true,
		}, true
	default:
		return Head{Points: HeadPoints(tip, angle), Filled: true}, true
	}
}

// Segment is a straight connector whose stroke width ignores zoom.
type Segment struct {
	Path             *Path
	NonScalingStroke bool
}

// Line builds a straight segment between two points.
func Line(start, end Point) Segment {
	p := NewPath()
	p.MoveTo(start.X, start.Y)
	p.LineTo(end.X, end.Y)
	return Segment{Path: p, NonScalingStroke: true}
}
