// Package viewport converts pointer positions between screen and canvas
// space. Zoom is unitless; Pan is kept in screen pixels.
package viewport

import (
	"math"

	"socketBoard/internal/models/whiteboard"
)

const (
	MinZoom  = 0.3
	MaxZoom  = 3.0
	ZoomStep = 0.2
)

type Viewport struct {
	Zoom float64
	Pan  whiteboard.Point
	// Origin is the container's top-left corner in client pixels.
	Origin whiteboard.Point

	panning  bool
	panStart whiteboard.Point
}

func New() *Viewport {
	return &Viewport{Zoom: 1}
}

func clamp(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// ScreenToCanvas maps client coordinates into canvas space.
func (v *Viewport) ScreenToCanvas(clientX, clientY float64) whiteboard.Point {
	return whiteboard.Point{
		X: (clientX - v.Origin.X - v.Pan.X) / v.Zoom,
		Y: (clientY - v.Origin.Y - v.Pan.Y) / v.Zoom,
	}
}

// CanvasToScreen is the inverse of ScreenToCanvas.
func (v *Viewport) CanvasToScreen(p whiteboard.Point) (clientX, clientY float64) {
	return p.X*v.Zoom + v.Pan.X + v.Origin.X, p.Y*v.Zoom + v.Pan.Y + v.Origin.Y
}

// Scale returns the current zoom factor.
func (v *Viewport) Scale() float64 {
	return v.Zoom
}

// SetZoom clamps z into [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = clamp(z)
}

func (v *Viewport) ZoomIn() {
	v.SetZoom(v.Zoom + ZoomStep)
}

func (v *Viewport) ZoomOut() {
	v.SetZoom(v.Zoom - ZoomStep)
}

func (v *Viewport) Reset() {
	v.Zoom = 1
	v.Pan = whiteboard.Point{}
	v.panning = false
}

// ZoomAt changes zoom by delta while keeping the canvas point under the
// client position (clientX, clientY) fixed on screen.
func (v *Viewport) ZoomAt(delta, clientX, clientY float64) {
	next := clamp(v.Zoom + delta)
	if next == v.Zoom {
		return
	}
	focal := whiteboard.Pt(clientX-v.Origin.X, clientY-v.Origin.Y)
	ratio := next / v.Zoom
	v.Pan = focal.Sub(focal.Sub(v.Pan).Mul(ratio))
	v.Zoom = next
}

// StartPan begins a pan gesture at the given client position.
func (v *Viewport) StartPan(clientX, clientY float64) {
	v.panning = true
	v.panStart = whiteboard.Pt(clientX, clientY)
}

// UpdatePan adds the unscaled screen delta since the last call to Pan.
// It is a no-op when no pan is in progress.
func (v *Viewport) UpdatePan(clientX, clientY float64) {
	if !v.panning {
		return
	}
	v.Pan = v.Pan.Add(whiteboard.Pt(clientX-v.panStart.X, clientY-v.panStart.Y))
	v.panStart = whiteboard.Pt(clientX, clientY)
}

func (v *Viewport) EndPan() {
	v.panning = false
}

func (v *Viewport) Panning() bool {
	return v.panning
}
