// Package interaction tracks drag and resize gestures. At most one gesture
// is active per controller; canvas state is written through an Updater.
package interaction

import (
	"socketBoard/internal/models/whiteboard"
)

type Kind int

const (
	KindDrag Kind = iota + 1
	KindResize
)

func (k Kind) String() string {
	switch k {
	case KindDrag:
		return "drag"
	case KindResize:
		return "resize"
	}
	return "none"
}

// Session is the state captured when a gesture starts.
type Session struct {
	Kind     Kind
	ItemID   string
	ItemType whiteboard.ItemType

	// client-pixel pointer position at gesture start and at the last move
	StartPointer whiteboard.Point
	LastPointer  whiteboard.Point

	StartPosition whiteboard.Point
	StartWidth    float64
	StartHeight   float64
}

func newSession(kind Kind, item whiteboard.Item, clientX, clientY float64) Session {
	w, h := item.Extent()
	p := whiteboard.Pt(clientX, clientY)
	return Session{
		Kind:          kind,
		ItemID:        item.ID,
		ItemType:      item.Type,
		StartPointer:  p,
		LastPointer:   p,
		StartPosition: item.Position,
		StartWidth:    w,
		StartHeight:   h,
	}
}

// ScreenDelta is the raw client-pixel movement since the gesture began.
func (s Session) ScreenDelta() whiteboard.Point {
	return s.LastPointer.Sub(s.StartPointer)
}

// ResizeTo computes the clamped size for a canvas-space delta.
func (s Session) ResizeTo(dx, dy float64) (w, h float64) {
	minW, minH := s.ItemType.MinSize()
	switch s.ItemType {
	case whiteboard.ItemLine:
		return max(minW, s.StartWidth+dx), s.StartHeight
	case whiteboard.ItemStar:
		d := max(dx, dy)
		return max(minW, s.StartWidth+d), max(minH, s.StartHeight+d)
	}
	return max(minW, s.StartWidth+dx), max(minH, s.StartHeight+dy)
}
