package whiteboard

// Patch is a partial item update. Nil fields are left untouched.
type Patch struct {
	Position    *Point         `json:"position,omitempty"`
	Width       *float64       `json:"width,omitempty"`
	Height      *float64       `json:"height,omitempty"`
	Radius      *float64       `json:"radius,omitempty"`
	Points      Points         `json:"points,omitempty"`
	Content     *string        `json:"content,omitempty"`
	Color       *string        `json:"color,omitempty"`
	ShapeColor  *string        `json:"shapeColor,omitempty"`
	Fill        *bool          `json:"fill,omitempty"`
	StrokeWidth *float64       `json:"strokeWidth,omitempty"`
	Opacity     *float64       `json:"opacity,omitempty"`
	FontFamily  *string        `json:"fontFamily,omitempty"`
	FontWeight  *int           `json:"fontWeight,omitempty"`
	FontSize    *float64       `json:"fontSize,omitempty"`
	ArrowStyle  *ArrowHead     `json:"arrowStyle,omitempty"`
	PenStyle    *PenStyle      `json:"penStyle,omitempty"`
	Checked     *bool          `json:"checked,omitempty"`
	ImageURL    *string        `json:"imageUrl,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	LastEditedBy *string `json:"last_edited_by,omitempty"`
}

// Apply returns a copy of it with the patch fields applied.
func (p Patch) Apply(it Item) Item {
	out := it.Clone()
	if p.Position != nil {
		out.Position = *p.Position
	}
	if p.Width != nil {
		out.Width = *p.Width
	}
	if p.Height != nil {
		out.Height = *p.Height
	}
	if p.Radius != nil {
		out.Radius = *p.Radius
	}
	if p.Points != nil {
		out.Points = p.Points.Clone()
	}
	if p.Content != nil {
		out.Content = *p.Content
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.ShapeColor != nil {
		out.ShapeColor = *p.ShapeColor
	}
	if p.Fill != nil {
		out.Fill = *p.Fill
	}
	if p.StrokeWidth != nil {
		out.StrokeWidth = *p.StrokeWidth
	}
	if p.Opacity != nil {
		out.Opacity = *p.Opacity
	}
	if p.FontFamily != nil {
		out.FontFamily = *p.FontFamily
	}
	if p.FontWeight != nil {
		out.FontWeight = *p.FontWeight
	}
	if p.FontSize != nil {
		out.FontSize = *p.FontSize
	}
	if p.ArrowStyle != nil {
		out.ArrowStyle = *p.ArrowStyle
	}
	if p.PenStyle != nil {
		out.PenStyle = *p.PenStyle
	}
	if p.Checked != nil {
		out.Checked = *p.Checked
	}
	if p.ImageURL != nil {
		out.ImageURL = *p.ImageURL
	}
	if p.Metadata != nil {
		if out.Metadata == nil {
			out.Metadata = make(map[string]any, len(p.Metadata))
		}
		for k, v := range p.Metadata {
			out.Metadata[k] = v
		}
	}
	if p.LastEditedBy != nil {
		out.LastEditedBy = *p.LastEditedBy
	}
	return out
}

// Ptr is a helper for building patches.
func Ptr[T any](v T) *T {
	return &v
}
