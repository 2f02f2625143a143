package whiteboard

import (
	"encoding/json"
	"fmt"
	"maps"
)

type ItemType string

const (
	ItemCheckbox  ItemType = "checkbox"
	ItemNote      ItemType = "note"
	ItemText      ItemType = "text"
	ItemBox       ItemType = "box"
	ItemCircle    ItemType = "circle"
	ItemTriangle  ItemType = "triangle"
	ItemDiamond   ItemType = "diamond"
	ItemHexagon   ItemType = "hexagon"
	ItemStar      ItemType = "star"
	ItemPentagon  ItemType = "pentagon"
	ItemTrapezoid ItemType = "trapezoid"
	ItemCloud     ItemType = "cloud"
	ItemSpeech    ItemType = "speech"
	ItemHeart     ItemType = "heart"
	ItemLine      ItemType = "line"
	ItemArrow     ItemType = "arrow"
	ItemFreehand  ItemType = "freehand"
	ItemImage     ItemType = "image"

	// legacy name of freehand strokes, accepted on decode only
	itemPenAlias ItemType = "pen"
)

var itemTypes = []ItemType{
	ItemCheckbox, ItemNote, ItemText, ItemBox, ItemCircle, ItemTriangle, ItemDiamond,
	ItemHexagon, ItemStar, ItemPentagon, ItemTrapezoid, ItemCloud, ItemSpeech, ItemHeart,
	ItemLine, ItemArrow, ItemFreehand, ItemImage,
}

// ItemTypes lists every known item type.
func ItemTypes() []ItemType {
	out := make([]ItemType, len(itemTypes))
	copy(out, itemTypes)
	return out
}

// ParseItemType maps a wire name to an ItemType. "pen" resolves to ItemFreehand.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(s)
	if t == itemPenAlias {
		return ItemFreehand, nil
	}
	for _, known := range itemTypes {
		if known == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown item type %q", s)
}

func (t *ItemType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseItemType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsShape reports whether the type is drawn from a bounding box outline.
func (t ItemType) IsShape() bool {
	switch t {
	case ItemBox, ItemCircle, ItemTriangle, ItemDiamond, ItemHexagon, ItemStar,
		ItemPentagon, ItemTrapezoid, ItemCloud, ItemSpeech, ItemHeart:
		return true
	}
	return false
}

// MinSize returns the smallest width and height a resize may produce.
// A zero height means the type has no height constraint.
func (t ItemType) MinSize() (w, h float64) {
	switch t {
	case ItemImage:
		return 100, 100
	case ItemSpeech:
		return 150, 100
	case ItemCloud:
		return 120, 80
	case ItemStar:
		return 80, 80
	case ItemLine:
		return 20, 0
	default:
		return 40, 30
	}
}

type PenStyle string

const (
	PenStylePen    PenStyle = "pen"
	PenStyleMarker PenStyle = "marker"
)

// ArrowHead is the tip decoration of a stored arrow.
type ArrowHead string

const (
	ArrowHeadTriangle ArrowHead = "triangle"
	ArrowHeadBar      ArrowHead = "bar"
	ArrowHeadDiamond  ArrowHead = "diamond"
	ArrowHeadLine     ArrowHead = "line"
)

const (
	DefaultStrokeWidth = 2.0
	DefaultShapeColor  = "blue"
	DefaultArrowColor  = "orange"
)

// Item is a single whiteboard element. Zero values mean "unset" on the wire.
type Item struct {
	ID          string         `json:"id"`
	Type        ItemType       `json:"type"`
	Position    Point          `json:"position"`
	Width       float64        `json:"width,omitempty"`
	Height      float64        `json:"height,omitempty"`
	Radius      float64        `json:"radius,omitempty"`
	Points      Points         `json:"points,omitempty"`
	Content     string         `json:"content,omitempty"`
	Color       string         `json:"color,omitempty"`
	ShapeColor  string         `json:"shapeColor,omitempty"`
	Fill        bool           `json:"fill,omitempty"`
	StrokeWidth float64        `json:"strokeWidth,omitempty"`
	Opacity     float64        `json:"opacity,omitempty"`
	FontFamily  string         `json:"fontFamily,omitempty"`
	FontWeight  int            `json:"fontWeight,omitempty"`
	FontSize    float64        `json:"fontSize,omitempty"`
	ArrowStyle  ArrowHead      `json:"arrowStyle,omitempty"`
	PenStyle    PenStyle       `json:"penStyle,omitempty"`
	Checked     bool           `json:"checked,omitempty"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	CreatedBy    string `json:"created_by,omitempty"`
	LastEditedBy string `json:"last_edited_by,omitempty"`
}

// Clone returns a deep copy.
func (it Item) Clone() Item {
	out := it
	out.Points = it.Points.Clone()
	if it.Metadata != nil {
		out.Metadata = maps.Clone(it.Metadata)
	}
	return out
}

func (it Item) StrokeWidthOrDefault() float64 {
	if it.StrokeWidth <= 0 {
		return DefaultStrokeWidth
	}
	return it.StrokeWidth
}

func (it Item) OpacityOrDefault() float64 {
	if it.Opacity <= 0 || it.Opacity > 1 {
		return 1
	}
	return it.Opacity
}

// Size returns the item's bounding size. Circles stored with only a
// radius report a square of twice that radius.
func (it Item) Size() (w, h float64) {
	w, h = it.Width, it.Height
	if it.Type == ItemCircle && w == 0 && h == 0 && it.Radius > 0 {
		return it.Radius * 2, it.Radius * 2
	}
	return w, h
}

// Rendered sizes of items that are usually stored without one.
const (
	DefaultExtent        = 150.0
	NoteExtentWidth      = 192.0
	NoteExtentHeight     = 120.0
	TextExtentWidth      = 240.0
	TextExtentHeight     = 40.0
	CheckboxExtentWidth  = 192.0
	CheckboxExtentHeight = 28.0
)

// Extent is Size with a fallback for missing dimensions, so sizeless
// notes, text and checkboxes can still be hit, dragged and drawn. Lines
// keep a zero height.
func (it Item) Extent() (w, h float64) {
	w, h = it.Size()
	fw, fh := DefaultExtent, DefaultExtent
	switch it.Type {
	case ItemNote:
		fw, fh = NoteExtentWidth, NoteExtentHeight
	case ItemText:
		fw, fh = TextExtentWidth, TextExtentHeight
	case ItemCheckbox:
		fw, fh = CheckboxExtentWidth, CheckboxExtentHeight
	case ItemLine:
		fh = 0
	}
	if w <= 0 {
		w = fw
	}
	if h <= 0 {
		h = fh
	}
	return w, h
}

// AbsolutePoints returns Points translated by Position.
func (it Item) AbsolutePoints() Points {
	out := make(Points, len(it.Points))
	for i, p := range it.Points {
		out[i] = p.Add(it.Position)
	}
	return out
}

// ArrowEndpoints returns the canvas-space start and end of a line or arrow.
// Points take precedence; legacy records carry them in metadata.
func (it Item) ArrowEndpoints() (start, end Point) {
	if len(it.Points) >= 2 {
		return it.Points[0].Add(it.Position), it.Points[len(it.Points)-1].Add(it.Position)
	}
	if sx, ok := metaFloat(it.Metadata, "startX"); ok {
		sy, _ := metaFloat(it.Metadata, "startY")
		ex, _ := metaFloat(it.Metadata, "endX")
		ey, _ := metaFloat(it.Metadata, "endY")
		return Pt(sx, sy).Add(it.Position), Pt(ex, ey).Add(it.Position)
	}
	length := it.Width
	if length == 0 {
		length = DefaultExtent
	}
	return it.Position, it.Position.Add(Pt(length, 0))
}

// ArrowVariant is the drawing variant kept in metadata["style"].
func (it Item) ArrowVariant() string {
	if it.Metadata == nil {
		return ""
	}
	s, _ := it.Metadata["style"].(string)
	return s
}

func metaFloat(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
