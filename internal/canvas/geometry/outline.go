package geometry

import (
	"errors"

	"socketBoard/internal/models/whiteboard"
)

var ErrNoOutline = errors.New("geometry: item type has no box outline")

// Outline returns the closed outline of a box-family item in its local
// coordinate space, with (0,0) at the top-left of the bounding box.
func Outline(t whiteboard.ItemType, w, h float64) (*Path, error) {
	switch t {
	case whiteboard.ItemBox, whiteboard.ItemNote, whiteboard.ItemText,
		whiteboard.ItemCheckbox, whiteboard.ItemImage:
		return Polygon([]Point{Pt(0, 0), Pt(w, 0), Pt(w, h), Pt(0, h)}), nil
	case whiteboard.ItemCircle:
		return Ellipse(w, h), nil
	case whiteboard.ItemTriangle:
		return Polygon(Triangle(w, h)), nil
	case whiteboard.ItemDiamond:
		return Polygon(Diamond(w, h)), nil
	case whiteboard.ItemHexagon:
		return Polygon(Hexagon(w, h)), nil
	case whiteboard.ItemPentagon:
		return Polygon(Pentagon(w, h)), nil
	case whiteboard.ItemTrapezoid:
		return Polygon(Trapezoid(w, h)), nil
	case whiteboard.ItemStar:
		return Polygon(Star(w, h)), nil
	case whiteboard.ItemCloud:
		return Cloud(w, h), nil
	case whiteboard.ItemSpeech:
		return Speech(w, h), nil
	case whiteboard.ItemHeart:
		return Heart(w, h), nil
	}
	return nil, ErrNoOutline
}

// ItemOutline places the outline of item at its canvas position. Missing
// dimensions fall back to the item's extent.
func ItemOutline(item whiteboard.Item) (*Path, error) {
	w, h := item.Extent()
	p, err := Outline(item.Type, w, h)
	if err != nil {
		return nil, err
	}
	return p.Translate(item.Position), nil
}
