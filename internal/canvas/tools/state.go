// Package tools is the toolbar state machine. State is a value; every
// transition returns the next State and, where the toolbar triggers work
// outside itself, an Effect for the editor to run.
package tools

import (
	"slices"

	"socketBoard/internal/canvas/freehand"
	"socketBoard/internal/canvas/geometry"
	"socketBoard/internal/models/whiteboard"
)

type Tool string

const (
	Select   Tool = "select"
	Hand     Tool = "hand"
	Pen      Tool = "pen"
	Shapes   Tool = "shapes"
	Arrow    Tool = "arrow"
	Text     Tool = "text"
	Checkbox Tool = "checkbox"
	Note     Tool = "note"
	Image    Tool = "image"
	Undo     Tool = "undo"
	Redo     Tool = "redo"
)

// Menu is the toolbar popover currently open. At most one is open.
type Menu string

const (
	MenuNone   Menu = ""
	MenuShapes Menu = "shapes"
	MenuArrow  Menu = "arrow"
	MenuPen    Menu = "pen"
)

// Submenu is a panel nested in the open Menu.
type Submenu string

const (
	SubmenuNone      Submenu = ""
	SubmenuShape     Submenu = "shape"
	SubmenuColors    Submenu = "colors"
	SubmenuStyle     Submenu = "style"
	SubmenuThickness Submenu = "thickness"
	SubmenuType      Submenu = "type"
	SubmenuSmoothing Submenu = "smoothing"
)

var menuSubmenus = map[Menu][]Submenu{
	MenuShapes: {SubmenuShape, SubmenuColors},
	MenuArrow:  {SubmenuStyle, SubmenuThickness, SubmenuColors},
	MenuPen:    {SubmenuType, SubmenuThickness, SubmenuColors, SubmenuSmoothing},
}

type PenMode string

const (
	PenDraw  PenMode = "draw"
	PenErase PenMode = "erase"
)

type Font struct {
	Family string  `json:"fontFamily"`
	Weight int     `json:"fontWeight"`
	Size   float64 `json:"fontSize"`
}

var DefaultFont = Font{Family: "Inter, system-ui, sans-serif", Weight: 500, Size: 14}

// FontOf returns the font stored on a text item, filling gaps from DefaultFont.
func FontOf(it whiteboard.Item) Font {
	f := DefaultFont
	if it.FontFamily != "" {
		f.Family = it.FontFamily
	}
	if it.FontWeight != 0 {
		f.Weight = it.FontWeight
	}
	if it.FontSize != 0 {
		f.Size = it.FontSize
	}
	return f
}

// StrokePresets are always offered next to the recent widths.
var StrokePresets = []float64{2, 3, 4, 6}

const (
	strokeHistoryLen = 5
	strokeChoices    = 6
)

type State struct {
	Active  Tool
	Menu    Menu
	Submenu Submenu

	PenMode   PenMode
	PenType   whiteboard.PenStyle
	Smoothing freehand.Smoothing

	LastShape    whiteboard.ItemType
	ShapeColor   string
	NoteColor    string
	ArrowVariant geometry.ArrowVariant

	StrokeWidth   float64
	StrokeHistory []float64

	Font         Font
	ActiveTextID string
}

func Initial() State {
	return State{
		Active:        Select,
		PenMode:       PenDraw,
		PenType:       whiteboard.PenStylePen,
		Smoothing:     freehand.SmoothingMedium,
		LastShape:     whiteboard.ItemBox,
		ShapeColor:    whiteboard.DefaultShapeColor,
		NoteColor:     "yellow",
		ArrowVariant:  geometry.ArrowStraight,
		StrokeWidth:   whiteboard.DefaultStrokeWidth,
		StrokeHistory: []float64{2, 4, 6},
		Font:          DefaultFont,
	}
}

func (s State) clone() State {
	s.StrokeHistory = slices.Clone(s.StrokeHistory)
	return s
}

func (s State) closeMenus() State {
	s.Menu = MenuNone
	s.Submenu = SubmenuNone
	return s
}

func (s State) toggleMenu(m Menu) State {
	if s.Menu == m {
		return s.closeMenus()
	}
	s.Menu = m
	s.Submenu = SubmenuNone
	return s
}

// Drawing reports whether pointer input goes to the freehand engine.
func (s State) Drawing() bool {
	return s.Active == Pen && s.PenMode == PenDraw
}

// Erasing reports whether pointer input erases strokes.
func (s State) Erasing() bool {
	return s.Active == Pen && s.PenMode == PenErase
}

// PenOptions builds stroke options from the pen settings.
func (s State) PenOptions(author string) freehand.Options {
	return freehand.Options{
		Style:     s.PenType,
		BaseWidth: s.StrokeWidth,
		Color:     s.ShapeColor,
		Smoothing: s.Smoothing,
		Author:    author,
	}
}
