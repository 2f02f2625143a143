package geometry

// SmoothStroke interpolates the points with a uniform Catmull-Rom spline
// and returns it as a chain of cubic Beziers through every input point.
// End segments reuse the endpoint as the missing neighbour.
func SmoothStroke(pts []Point) *Path {
	p := NewPath()
	switch len(pts) {
	case 0:
		return p
	case 1:
		p.MoveTo(pts[0].X, pts[0].Y)
		p.LineTo(pts[0].X, pts[0].Y)
		return p
	case 2:
		p.MoveTo(pts[0].X, pts[0].Y)
		p.LineTo(pts[1].X, pts[1].Y)
		return p
	}

	p.MoveTo(pts[0].X, pts[0].Y)
	last := len(pts) - 1
	for i := 0; i < last; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, last)]

		c1 := p1.Add(p2.Sub(p0).Div(6))
		c2 := p2.Sub(p3.Sub(p1).Div(6))
		p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p2.X, p2.Y)
	}
	return p
}
