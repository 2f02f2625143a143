// Package freehand turns pointer input into freehand strokes and erases
// whole strokes under the cursor.
package freehand

import (
	"errors"

	"github.com/google/uuid"

	"socketBoard/internal/canvas"
	"socketBoard/internal/models/whiteboard"
)

// MinDelta is the smallest distance, in canvas units, between two
// consecutive points of a stroke.
const MinDelta = 0.5

// EraseRadius is the hit radius of the eraser in screen pixels; it is
// divided by zoom before testing canvas points.
const EraseRadius = 20.0

const (
	markerWidthFactor = 3.0
	markerMinWidth    = 12.0
	markerOpacity     = 0.45
)

var ErrNotDrawing = errors.New("freehand: no stroke in progress")

type Smoothing int

const (
	SmoothingLow    Smoothing = 1
	SmoothingMedium Smoothing = 3
	SmoothingHigh   Smoothing = 5
)

func (s Smoothing) factor() float64 {
	if s < 1 {
		return 1
	}
	return float64(s)
}

// StrokeAttributes returns the width and opacity used for a pen style.
// Markers are wide and translucent to imitate a highlighter.
func StrokeAttributes(style whiteboard.PenStyle, baseWidth float64) (width, opacity float64) {
	if baseWidth <= 0 {
		baseWidth = whiteboard.DefaultStrokeWidth
	}
	if style == whiteboard.PenStyleMarker {
		return max(baseWidth*markerWidthFactor, markerMinWidth), markerOpacity
	}
	return baseWidth, 1
}

// Smooth blends raw into last: last + (raw-last)/factor.
func Smooth(last, raw whiteboard.Point, s Smoothing) whiteboard.Point {
	return last.Add(raw.Sub(last).Div(s.factor()))
}

// Options configure a new stroke.
type Options struct {
	Style     whiteboard.PenStyle
	BaseWidth float64
	Color     string
	Smoothing Smoothing
	Author    string
}

// Projector maps client coordinates to canvas space.
type Projector interface {
	ScreenToCanvas(clientX, clientY float64) whiteboard.Point
	Scale() float64
}

// Items is read access to the board's items.
type Items interface {
	Filter(keep func(whiteboard.Item) bool) []whiteboard.Item
}

// Writer applies stroke mutations.
type Writer interface {
	AddItem(item whiteboard.Item) error
	UpdateItem(id string, patch whiteboard.Patch) error
	DeleteItem(id string) error
}

type Engine struct {
	proj   Projector
	items  Items
	writer Writer
	newID  func() string

	current   string
	smoothing Smoothing
	points    whiteboard.Points
}

func NewEngine(proj Projector, items Items, writer Writer) *Engine {
	return &Engine{proj: proj, items: items, writer: writer, newID: uuid.NewString}
}

// Drawing reports whether a stroke is in progress.
func (e *Engine) Drawing() bool {
	return e.current != ""
}

// CurrentStroke returns the id of the stroke in progress.
func (e *Engine) CurrentStroke() string {
	return e.current
}

// Begin creates a new stroke holding the pointer position as its first point.
func (e *Engine) Begin(clientX, clientY float64, opts Options) (string, error) {
	if e.current != "" {
		e.End()
	}
	p := e.proj.ScreenToCanvas(clientX, clientY)
	style := opts.Style
	if style == "" {
		style = whiteboard.PenStylePen
	}
	width, opacity := StrokeAttributes(style, opts.BaseWidth)
	item := whiteboard.Item{
		ID:          e.newID(),
		Type:        whiteboard.ItemFreehand,
		Points:      whiteboard.Points{p},
		ShapeColor:  opts.Color,
		StrokeWidth: width,
		Opacity:     opacity,
		PenStyle:    style,
		CreatedBy:   opts.Author,
	}
	if err := e.writer.AddItem(item); err != nil {
		return "", err
	}
	e.current = item.ID
	e.smoothing = opts.Smoothing
	e.points = whiteboard.Points{p}
	return item.ID, nil
}

// Extend smooths the pointer position into the current stroke. It reports
// whether a point was appended; points closer than MinDelta to the last
// one are dropped.
func (e *Engine) Extend(clientX, clientY float64) (bool, error) {
	if e.current == "" {
		return false, nil
	}
	raw := e.proj.ScreenToCanvas(clientX, clientY)
	last, _ := e.points.Last()
	next := Smooth(last, raw, e.smoothing)
	if next.DistanceSquared(last) < MinDelta*MinDelta {
		canvas.Logger().Debug("point rejected", "stroke", e.current)
		return false, nil
	}
	e.points = append(e.points, next)
	if err := e.writer.UpdateItem(e.current, whiteboard.Patch{Points: e.points.Clone()}); err != nil {
		return false, err
	}
	return true, nil
}

// End finalizes the current stroke with whatever points it holds. Calling
// it with no stroke in progress is a no-op.
func (e *Engine) End() (string, int) {
	if e.current == "" {
		return "", 0
	}
	id, n := e.current, len(e.points)
	canvas.Logger().Debug("stroke finalized", "stroke", id, "points", n)
	e.current = ""
	e.points = nil
	return id, n
}

// HitTest returns the first freehand stroke, in z-order, with a point
// within EraseRadius/zoom of the canvas point p.
func (e *Engine) HitTest(p whiteboard.Point) (whiteboard.Item, bool) {
	r := EraseRadius / e.scale()
	r2 := r * r
	strokes := e.items.Filter(func(it whiteboard.Item) bool { return it.Type == whiteboard.ItemFreehand })
	for _, s := range strokes {
		for _, pt := range s.AbsolutePoints() {
			if pt.DistanceSquared(p) <= r2 {
				return s, true
			}
		}
	}
	return whiteboard.Item{}, false
}

// Erase deletes the whole stroke under the pointer, if any.
func (e *Engine) Erase(clientX, clientY float64) (string, error) {
	p := e.proj.ScreenToCanvas(clientX, clientY)
	hit, ok := e.HitTest(p)
	if !ok {
		return "", nil
	}
	if hit.ID == e.current {
		e.End()
	}
	if err := e.writer.DeleteItem(hit.ID); err != nil {
		return "", err
	}
	canvas.Logger().Debug("stroke erased", "stroke", hit.ID)
	return hit.ID, nil
}

func (e *Engine) scale() float64 {
	z := e.proj.Scale()
	if z <= 0 {
		return 1
	}
	return z
}
