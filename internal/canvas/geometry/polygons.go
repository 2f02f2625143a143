package geometry

import "math"

// Triangle is an isosceles triangle with its apex centred on the top edge.
func Triangle(w, h float64) []Point {
	return []Point{Pt(w/2, 0), Pt(w, h), Pt(0, h)}
}

// Diamond is a rhombus inset 10% from each side of the box.
func Diamond(w, h float64) []Point {
	return scaleUnit(w, h, []Point{
		Pt(50, 10), Pt(90, 50), Pt(50, 90), Pt(10, 50),
	})
}

// Hexagon is a pointy-top hexagon inset into the box.
func Hexagon(w, h float64) []Point {
	return scaleUnit(w, h, []Point{
		Pt(50, 5), Pt(90, 27.5), Pt(90, 72.5), Pt(50, 95), Pt(10, 72.5), Pt(10, 27.5),
	})
}

// Pentagon is a regular pentagon stretched to fill the box, first vertex up.
func Pentagon(w, h float64) []Point {
	return RegularPolygon(5, w, h)
}

// Trapezoid has a full-width base and a top edge spanning 20%..80% of w.
func Trapezoid(w, h float64) []Point {
	return []Point{Pt(w*0.2, 0), Pt(w*0.8, 0), Pt(w, h), Pt(0, h)}
}

// RegularPolygon returns n vertices on the ellipse inscribed in the box,
// starting at the top and going clockwise.
func RegularPolygon(n int, w, h float64) []Point {
	if n < 3 {
		return nil
	}
	cx, cy := w/2, h/2
	pts := make([]Point, n)
	for i := range pts {
		angle := float64(i)*2*math.Pi/float64(n) - math.Pi/2
		pts[i] = Pt(cx+cx*math.Cos(angle), cy+cy*math.Sin(angle))
	}
	return pts
}

// StarInnerRatio is the inner radius of a star relative to its outer radius.
const StarInnerRatio = 0.45

// Star is a five-point star. Outer radius is half the smaller side, inner
// vertices sit at 0.45 of it, and vertices alternate every π/5 starting up.
func Star(w, h float64) []Point {
	outer := math.Min(w, h) / 2
	inner := outer * StarInnerRatio
	cx, cy := w/2, h/2
	pts := make([]Point, 10)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := float64(i)*math.Pi/5 - math.Pi/2
		pts[i] = Pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return pts
}

func scaleUnit(w, h float64, pts []Point) []Point {
	sx, sy := w/100, h/100
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Pt(p.X*sx, p.Y*sy)
	}
	return out
}
