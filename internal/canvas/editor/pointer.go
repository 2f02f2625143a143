package editor

import (
	"socketBoard/internal/canvas"
	"socketBoard/internal/canvas/geometry"
	"socketBoard/internal/canvas/interaction"
	"socketBoard/internal/canvas/store"
	"socketBoard/internal/canvas/tools"
	"socketBoard/internal/models/whiteboard"
)

// MinArrowLength is the shortest connector, in canvas units, that a
// pointer release commits.
const MinArrowLength = 5.0

// ArrowDraft is a connector being drawn with the arrow tool.
type ArrowDraft struct {
	Variant geometry.ArrowVariant
	Start   whiteboard.Point
	Current whiteboard.Point
}

// Geometry returns the preview shaft and heads.
func (d ArrowDraft) Geometry() geometry.Arrow {
	return geometry.BuildArrow(d.Start, d.Current, d.Variant)
}

func (d ArrowDraft) Length() float64 {
	return d.Start.Distance(d.Current)
}

// PointerDown starts whatever the active tool does on press: panning,
// drawing, erasing, drawing a connector, or dragging the item under the
// pointer.
func (e *Editor) PointerDown(clientX, clientY float64) error {
	e.mu.Lock()
	defer e.unlock()
	p := e.view.ScreenToCanvas(clientX, clientY)

	switch {
	case e.tools.Active == tools.Hand:
		e.view.StartPan(clientX, clientY)
		return nil
	case e.tools.Drawing():
		e.pending = e.store.Snapshot()
		e.live.touched = false
		_, err := e.pen.Begin(clientX, clientY, e.tools.PenOptions(e.opts.UserID))
		return err
	case e.tools.Erasing():
		e.erasing = true
		return e.eraseAt(clientX, clientY)
	case e.tools.Active == tools.Arrow:
		e.arrow = &ArrowDraft{Variant: e.tools.ArrowVariant, Start: p, Current: p}
		return nil
	}

	hit, ok := e.itemAt(p)
	if !ok {
		e.selected = ""
		return nil
	}
	e.selected = hit.ID
	return e.begin(interaction.KindDrag, hit, clientX, clientY)
}

// PointerMove shares the cursor and feeds the gesture in progress.
func (e *Editor) PointerMove(clientX, clientY float64) error {
	e.mu.Lock()
	defer e.unlock()
	p := e.view.ScreenToCanvas(clientX, clientY)
	e.publishCursor(p)

	switch {
	case e.view.Panning():
		e.view.UpdatePan(clientX, clientY)
	case e.gestureActive():
		return e.gestures.Move(clientX, clientY)
	case e.pen.Drawing():
		_, err := e.pen.Extend(clientX, clientY)
		return err
	case e.erasing:
		return e.eraseAt(clientX, clientY)
	case e.arrow != nil:
		e.arrow.Current = p
	}
	return nil
}

// PointerUp finishes the gesture in progress. Each finished gesture is a
// single undo step.
func (e *Editor) PointerUp(clientX, clientY float64) error {
	e.mu.Lock()
	defer e.unlock()

	switch {
	case e.view.Panning():
		e.view.EndPan()
	case e.gestureActive():
		err := e.gestures.End(clientX, clientY)
		e.commitPending()
		return err
	case e.pen.Drawing():
		e.pen.End()
		e.commitPending()
	case e.erasing:
		e.erasing = false
	case e.arrow != nil:
		e.arrow.Current = e.view.ScreenToCanvas(clientX, clientY)
		return e.commitArrow()
	}
	return nil
}

func (e *Editor) gestureActive() bool {
	_, ok := e.gestures.Active()
	return ok
}

func (e *Editor) gestureOn(id string) bool {
	s, ok := e.gestures.Active()
	return ok && s.ItemID == id
}

func (e *Editor) begin(kind interaction.Kind, item whiteboard.Item, clientX, clientY float64) error {
	var err error
	if kind == interaction.KindResize {
		_, err = e.gestures.BeginResize(item, clientX, clientY)
	} else {
		_, err = e.gestures.BeginDrag(item, clientX, clientY)
	}
	if err != nil {
		return err
	}
	e.pending = e.store.Snapshot()
	e.live.touched = false
	return nil
}

func (e *Editor) beginOn(kind interaction.Kind, id string, clientX, clientY float64) error {
	e.mu.Lock()
	defer e.unlock()
	it, ok := e.store.Get(id)
	if !ok {
		return store.ErrItemNotFound
	}
	e.selected = id
	return e.begin(kind, it, clientX, clientY)
}

// BeginDrag starts moving an item from the given client position.
func (e *Editor) BeginDrag(id string, clientX, clientY float64) error {
	return e.beginOn(interaction.KindDrag, id, clientX, clientY)
}

// BeginResize starts resizing an item from its bottom-right handle.
func (e *Editor) BeginResize(id string, clientX, clientY float64) error {
	return e.beginOn(interaction.KindResize, id, clientX, clientY)
}

// DragPreview returns the screen offset to draw the dragged item at.
func (e *Editor) DragPreview() (string, whiteboard.Point, bool) {
	e.mu.Lock()
	defer e.unlock()
	s, ok := e.gestures.Active()
	if !ok {
		return "", whiteboard.Point{}, false
	}
	off, ok := e.gestures.Preview()
	return s.ItemID, off, ok
}

// commitPending records the pre-gesture snapshot if the gesture changed
// anything.
func (e *Editor) commitPending() {
	if e.pending != nil && e.live.touched {
		e.history.Record(e.pending)
	}
	e.pending = nil
	e.live.touched = false
}

func (e *Editor) eraseAt(clientX, clientY float64) error {
	return e.record(func() error {
		_, err := e.pen.Erase(clientX, clientY)
		return err
	})
}

// ArrowPreview returns the connector being drawn, if any.
func (e *Editor) ArrowPreview() (ArrowDraft, bool) {
	e.mu.Lock()
	defer e.unlock()
	if e.arrow == nil {
		return ArrowDraft{}, false
	}
	return *e.arrow, true
}

// CancelArrow drops the connector being drawn.
func (e *Editor) CancelArrow() {
	e.mu.Lock()
	defer e.unlock()
	e.arrow = nil
}

func (e *Editor) commitArrow() error {
	d := *e.arrow
	e.arrow = nil
	if d.Length() < MinArrowLength {
		canvas.Logger().Debug("arrow discarded", "length", d.Length())
		return nil
	}
	width := e.tools.StrokeWidth
	if a := d.Geometry(); a.StrokeWidth > 0 {
		width = a.StrokeWidth
	}
	it := whiteboard.Item{
		Type:         whiteboard.ItemArrow,
		Position:     d.Start,
		Points:       whiteboard.Points{whiteboard.Pt(0, 0), d.Current.Sub(d.Start)},
		ShapeColor:   whiteboard.DefaultArrowColor,
		StrokeWidth:  width,
		ArrowStyle:   whiteboard.ArrowHeadTriangle,
		Metadata:     map[string]any{"style": string(d.Variant)},
		CreatedBy:    e.opts.UserID,
		LastEditedBy: e.opts.UserID,
	}
	return e.addRecorded(it)
}
