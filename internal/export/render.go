// Package export renders a board's items into a raster image.
package export

import (
	"image"
	"io"
	"log"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"socketBoard/internal/canvas/geometry"
	"socketBoard/internal/models/whiteboard"
)

const (
	// Padding is the blank margin around the drawn content, in pixels.
	Padding = 40
	// MaxDimension caps the longer side of the output; larger boards are
	// scaled down to fit.
	MaxDimension = 4096

	defaultFontSize = 16.0
	checkboxSize    = 20.0
)

var (
	monoFont     *truetype.Font
	monoFontOnce sync.Once
)

func fontFace(size float64) font.Face {
	monoFontOnce.Do(func() {
		f, err := truetype.Parse(gomono.TTF)
		if err != nil {
			log.Printf("[Export] parse font: %v", err)
			return
		}
		monoFont = f
	})
	if monoFont == nil {
		return nil
	}
	return truetype.NewFace(monoFont, &truetype.Options{Size: size, Hinting: font.HintingFull})
}

// Render draws items bottom to top onto a white image sized to their
// bounds plus Padding on every side.
func Render(items []whiteboard.Item) image.Image {
	return render(items).Image()
}

func WritePNG(w io.Writer, items []whiteboard.Item) error {
	return render(items).EncodePNG(w)
}

func render(items []whiteboard.Item) *gg.Context {
	bounds, _ := contentBounds(items)
	scale := 1.0
	if longest := math.Max(bounds.Width(), bounds.Height()) + 2*Padding; longest > MaxDimension {
		scale = MaxDimension / longest
	}
	width := min(int(math.Ceil((bounds.Width()+2*Padding)*scale)), MaxDimension)
	height := min(int(math.Ceil((bounds.Height()+2*Padding)*scale)), MaxDimension)

	dc := gg.NewContext(max(width, 1), max(height, 1))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(scale, scale)
	dc.Translate(Padding-bounds.Min.X, Padding-bounds.Min.Y)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, it := range items {
		dc.Push()
		drawItem(dc, it)
		dc.Pop()
	}
	return dc
}

func contentBounds(items []whiteboard.Item) (geometry.Rect, bool) {
	var out geometry.Rect
	found := false
	for _, it := range items {
		r, ok := itemBounds(it)
		if !ok {
			continue
		}
		if !found {
			out, found = r, true
			continue
		}
		out.Min.X = math.Min(out.Min.X, r.Min.X)
		out.Min.Y = math.Min(out.Min.Y, r.Min.Y)
		out.Max.X = math.Max(out.Max.X, r.Max.X)
		out.Max.Y = math.Max(out.Max.Y, r.Max.Y)
	}
	return out, found
}

func itemBounds(it whiteboard.Item) (geometry.Rect, bool) {
	switch it.Type {
	case whiteboard.ItemFreehand:
		if len(it.Points) == 0 {
			return geometry.Rect{}, false
		}
		lo, hi := it.AbsolutePoints().Bounds()
		return geometry.Rect{Min: lo, Max: hi}, true
	case whiteboard.ItemLine, whiteboard.ItemArrow:
		start, end := it.ArrowEndpoints()
		lo, hi := whiteboard.Points{start, end}.Bounds()
		return geometry.Rect{Min: lo, Max: hi}, true
	}
	w, h := it.Extent()
	return geometry.Rect{Min: it.Position, Max: it.Position.Add(whiteboard.Pt(w, h))}, true
}

func drawItem(dc *gg.Context, it whiteboard.Item) {
	switch it.Type {
	case whiteboard.ItemFreehand:
		drawStroke(dc, it)
	case whiteboard.ItemLine:
		drawLine(dc, it)
	case whiteboard.ItemArrow:
		drawArrow(dc, it)
	case whiteboard.ItemNote:
		drawNote(dc, it)
	case whiteboard.ItemText:
		drawText(dc, it, it.Position, 0)
	case whiteboard.ItemCheckbox:
		drawCheckbox(dc, it)
	case whiteboard.ItemImage:
		drawImagePlaceholder(dc, it)
	default:
		if it.Type.IsShape() {
			drawShape(dc, it)
		}
	}
}

func tracePath(dc *gg.Context, p *geometry.Path) {
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case geometry.MoveTo:
			dc.MoveTo(e.Point.X, e.Point.Y)
		case geometry.LineTo:
			dc.LineTo(e.Point.X, e.Point.Y)
		case geometry.QuadTo:
			dc.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case geometry.CubicTo:
			dc.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case geometry.Close:
			dc.ClosePath()
		}
	}
}

func drawShape(dc *gg.Context, it whiteboard.Item) {
	outline, err := geometry.ItemOutline(it)
	if err != nil {
		return
	}
	shapeColor := it.ShapeColor
	if shapeColor == "" {
		shapeColor = it.Color
	}
	c := resolveColor(shapeColor, whiteboard.DefaultShapeColor, it.OpacityOrDefault())
	tracePath(dc, outline)
	dc.SetColor(c)
	dc.SetLineWidth(it.StrokeWidthOrDefault())
	if it.Fill {
		dc.FillPreserve()
	}
	dc.Stroke()
	if it.Content != "" {
		drawText(dc, it, it.Position, 8)
	}
}

func drawStroke(dc *gg.Context, it whiteboard.Item) {
	tracePath(dc, geometry.SmoothStroke(it.AbsolutePoints()))
	dc.SetColor(resolveColor(it.Color, "black", it.OpacityOrDefault()))
	dc.SetLineWidth(it.StrokeWidthOrDefault())
	dc.Stroke()
}

func drawLine(dc *gg.Context, it whiteboard.Item) {
	start, end := it.ArrowEndpoints()
	lineColor := it.Color
	if lineColor == "" {
		lineColor = it.ShapeColor
	}
	tracePath(dc, geometry.Line(start, end).Path)
	dc.SetColor(resolveColor(lineColor, "black", it.OpacityOrDefault()))
	dc.SetLineWidth(it.StrokeWidthOrDefault())
	dc.Stroke()
}

func drawArrow(dc *gg.Context, it whiteboard.Item) {
	start, end := it.ArrowEndpoints()
	variant := geometry.ParseArrowVariant(it.ArrowVariant())
	arrow := geometry.BuildArrow(start, end, variant)
	c := resolveColor(it.Color, whiteboard.DefaultArrowColor, it.OpacityOrDefault())

	width := it.StrokeWidthOrDefault()
	if arrow.StrokeWidth > 0 {
		width = arrow.StrokeWidth
	}
	dc.SetColor(c)
	dc.SetLineWidth(width)
	tracePath(dc, arrow.Shaft)
	if len(arrow.Dash) > 0 {
		dc.SetDash(arrow.Dash...)
	}
	dc.Stroke()
	dc.SetDash()

	heads := make([]geometry.Head, 0, 2)
	if it.ArrowStyle == "" {
		for _, pts := range arrow.Heads {
			heads = append(heads, geometry.Head{Points: pts, Filled: true})
		}
	} else {
		if h, ok := geometry.StoredHead(it.ArrowStyle, end, arrow.Angle); ok {
			heads = append(heads, h)
		}
		if variant == geometry.ArrowDouble {
			if h, ok := geometry.StoredHead(it.ArrowStyle, start, arrow.Angle+math.Pi); ok {
				heads = append(heads, h)
			}
		}
	}
	for _, h := range heads {
		if h.Filled {
			tracePath(dc, geometry.Polygon(h.Points))
			dc.Fill()
			continue
		}
		tracePath(dc, geometry.Polyline(h.Points))
		dc.Stroke()
	}
}

func drawNote(dc *gg.Context, it whiteboard.Item) {
	w, h := it.Extent()
	dc.DrawRectangle(it.Position.X, it.Position.Y, w, h)
	dc.SetColor(noteColor(it.Color))
	dc.FillPreserve()
	dc.SetRGBA(0, 0, 0, 0.15)
	dc.SetLineWidth(1)
	dc.Stroke()
	drawText(dc, it, it.Position, 10)
}

func drawCheckbox(dc *gg.Context, it whiteboard.Item) {
	x, y := it.Position.X, it.Position.Y
	dc.DrawRectangle(x, y, checkboxSize, checkboxSize)
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(2)
	dc.Stroke()
	if it.Checked {
		dc.MoveTo(x+4, y+checkboxSize/2)
		dc.LineTo(x+checkboxSize/2-1, y+checkboxSize-5)
		dc.LineTo(x+checkboxSize-4, y+4)
		dc.SetRGB(0.13, 0.55, 0.13)
		dc.Stroke()
	}
	drawText(dc, it, it.Position.Add(whiteboard.Pt(checkboxSize+8, 0)), 0)
}

func drawImagePlaceholder(dc *gg.Context, it whiteboard.Item) {
	w, h := it.Extent()
	dc.DrawRectangle(it.Position.X, it.Position.Y, w, h)
	dc.SetRGB(0.93, 0.93, 0.93)
	dc.FillPreserve()
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.Stroke()
	dc.MoveTo(it.Position.X, it.Position.Y)
	dc.LineTo(it.Position.X+w, it.Position.Y+h)
	dc.MoveTo(it.Position.X+w, it.Position.Y)
	dc.LineTo(it.Position.X, it.Position.Y+h)
	dc.Stroke()
}

func drawText(dc *gg.Context, it whiteboard.Item, at whiteboard.Point, inset float64) {
	if it.Content == "" {
		return
	}
	size := it.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	face := fontFace(size)
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	textColor := "black"
	if it.Type == whiteboard.ItemText && it.Color != "" {
		textColor = it.Color
	}
	dc.SetColor(resolveColor(textColor, "black", 1))
	w, _ := it.Extent()
	dc.DrawStringWrapped(it.Content, at.X+inset, at.Y+inset, 0, 0, math.Max(w-2*inset, size), 1.3, gg.AlignLeft)
}
