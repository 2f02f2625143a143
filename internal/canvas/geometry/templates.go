package geometry

import "math"

// Cloud is a closed six-lobe outline built from cubic segments.
func Cloud(w, h float64) *Path {
	p := NewPath()
	p.MoveTo(0.2*w, 0.65*h)
	p.CubicTo(0.05*w, 0.55*h, 0.05*w, 0.35*h, 0.22*w, 0.3*h)
	p.CubicTo(0.18*w, 0.05*h, 0.42*w, 0.02*h, 0.48*w, 0.22*h)
	p.CubicTo(0.6*w, -0.05*h, 0.88*w, 0.05*h, 0.82*w, 0.3*h)
	p.CubicTo(0.97*w, 0.35*h, 0.98*w, 0.6*h, 0.82*w, 0.68*h)
	p.CubicTo(0.78*w, 0.92*h, 0.48*w, 0.95*h, 0.42*w, 0.75*h)
	p.CubicTo(0.33*w, 0.9*h, 0.12*w, 0.85*h, 0.2*w, 0.65*h)
	p.Close()
	return p
}

// Heart is two mirrored cubic lobes meeting at the bottom centre.
func Heart(w, h float64) *Path {
	top := 0.3 * h
	p := NewPath()
	p.MoveTo(w/2, h)
	p.CubicTo(1.1*w, 0.7*h, 0.95*w, top, 0.75*w, top)
	p.CubicTo(0.6*w, top, 0.5*w, 0.45*h, w/2, 0.55*h)
	p.CubicTo(0.5*w, 0.45*h, 0.4*w, top, 0.25*w, top)
	p.CubicTo(0.05*w, top, -0.1*w, 0.7*h, w/2, h)
	p.Close()
	return p
}

// Speech bubble proportions relative to the bounding box.
const (
	speechBodyWidth   = 0.8
	speechBodyHeight  = 0.75
	speechTailWidth   = 0.25
	speechTailHeight  = 0.25
	speechCornerRatio = 0.18
)

// Speech is a rounded rectangle covering 80%x75% of the box with a tail
// leaving the bottom edge between 45% and 60% of the body width.
func Speech(w, h float64) *Path {
	bw := w * speechBodyWidth
	bh := h * speechBodyHeight
	tailW := w * speechTailWidth
	tailH := h * speechTailHeight
	r := math.Min(bw, bh) * speechCornerRatio

	p := NewPath()
	p.MoveTo(r, 0)
	p.HLineTo(bw - r)
	p.QuadTo(bw, 0, bw, r)
	p.VLineTo(bh - r)
	p.QuadTo(bw, bh, bw-r, bh)
	p.HLineTo(0.6 * bw)
	p.LineTo(bw+0.1*tailW, bh+tailH)
	p.LineTo(0.45*bw, bh)
	p.HLineTo(r)
	p.QuadTo(0, bh, 0, bh-r)
	p.VLineTo(r)
	p.QuadTo(0, 0, r, 0)
	p.Close()
	return p
}

// Ellipse approximates the ellipse inscribed in the box with four cubics.
func Ellipse(w, h float64) *Path {
	const k = 0.5522847498 // 4/3*(sqrt(2)-1)
	rx, ry := w/2, h/2
	cx, cy := rx, ry
	p := NewPath()
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+k*ry, cx+k*rx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-k*rx, cy+ry, cx-rx, cy+k*ry, cx-rx, cy)
	p.CubicTo(cx-rx, cy-k*ry, cx-k*rx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+k*rx, cy-ry, cx+rx, cy-k*ry, cx+rx, cy)
	p.Close()
	return p
}

// RoundedRect is a rectangle with quadratic corners of radius r.
func RoundedRect(w, h, r float64) *Path {
	r = math.Min(r, math.Min(w, h)/2)
	p := NewPath()
	if r <= 0 {
		return Polygon([]Point{Pt(0, 0), Pt(w, 0), Pt(w, h), Pt(0, h)})
	}
	p.MoveTo(r, 0)
	p.HLineTo(w - r)
	p.QuadTo(w, 0, w, r)
	p.VLineTo(h - r)
	p.QuadTo(w, h, w-r, h)
	p.HLineTo(r)
	p.QuadTo(0, h, 0, h-r)
	p.VLineTo(r)
	p.QuadTo(0, 0, r, 0)
	p.Close()
	return p
}
