package interaction

import (
	"errors"

	"socketBoard/internal/canvas"
	"socketBoard/internal/models/whiteboard"
)

var ErrGestureActive = errors.New("interaction: another gesture is active")

// Updater writes gesture results back to the item collection.
type Updater interface {
	UpdateItem(id string, patch whiteboard.Patch) error
}

// Scale reports the current zoom factor.
type Scale interface {
	Scale() float64
}

type Controller struct {
	scale   Scale
	updater Updater
	current *Session
}

func NewController(scale Scale, updater Updater) *Controller {
	return &Controller{scale: scale, updater: updater}
}

func (c *Controller) zoom() float64 {
	z := c.scale.Scale()
	if z <= 0 {
		return 1
	}
	return z
}

// Active returns the running gesture, if any.
func (c *Controller) Active() (Session, bool) {
	if c.current == nil {
		return Session{}, false
	}
	return *c.current, true
}

func (c *Controller) begin(kind Kind, item whiteboard.Item, clientX, clientY float64) (Session, error) {
	if c.current != nil {
		return Session{}, ErrGestureActive
	}
	s := newSession(kind, item, clientX, clientY)
	c.current = &s
	canvas.Logger().Debug("gesture started", "kind", kind.String(), "item", item.ID)
	return s, nil
}

// BeginDrag starts moving item from the given client position.
func (c *Controller) BeginDrag(item whiteboard.Item, clientX, clientY float64) (Session, error) {
	return c.begin(KindDrag, item, clientX, clientY)
}

// BeginResize starts resizing item from its handle at the given client position.
func (c *Controller) BeginResize(item whiteboard.Item, clientX, clientY float64) (Session, error) {
	return c.begin(KindResize, item, clientX, clientY)
}

// Move feeds a pointer move into the active gesture. Drags only update the
// preview; resizes write the clamped size on every move. A move without an
// active gesture does nothing.
func (c *Controller) Move(clientX, clientY float64) error {
	if c.current == nil {
		return nil
	}
	c.current.LastPointer = whiteboard.Pt(clientX, clientY)
	if c.current.Kind != KindResize {
		return nil
	}
	return c.writeSize()
}

func (c *Controller) writeSize() error {
	s := c.current
	d := s.ScreenDelta().Div(c.zoom())
	w, h := s.ResizeTo(d.X, d.Y)
	patch := whiteboard.Patch{Width: &w}
	if s.ItemType != whiteboard.ItemLine {
		patch.Height = &h
	}
	return c.updater.UpdateItem(s.ItemID, patch)
}

// Preview returns the optimistic screen offset of a drag in progress.
func (c *Controller) Preview() (whiteboard.Point, bool) {
	if c.current == nil || c.current.Kind != KindDrag {
		return whiteboard.Point{}, false
	}
	return c.current.ScreenDelta(), true
}

// End finishes the gesture at the given client position. A drag commits
// its new canvas position once: start + screenDelta/zoom.
func (c *Controller) End(clientX, clientY float64) error {
	if c.current == nil {
		return nil
	}
	s := c.current
	s.LastPointer = whiteboard.Pt(clientX, clientY)
	defer func() { c.current = nil }()

	canvas.Logger().Debug("gesture ended", "kind", s.Kind.String(), "item", s.ItemID)
	switch s.Kind {
	case KindDrag:
		pos := s.StartPosition.Add(s.ScreenDelta().Div(c.zoom()))
		if pos == s.StartPosition {
			return nil
		}
		return c.updater.UpdateItem(s.ItemID, whiteboard.Patch{Position: &pos})
	case KindResize:
		return c.writeSize()
	}
	return nil
}

// Cancel drops the active gesture without writing anything.
func (c *Controller) Cancel() {
	c.current = nil
}
