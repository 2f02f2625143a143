package tools

import (
	"slices"

	"socketBoard/internal/canvas/freehand"
	"socketBoard/internal/canvas/geometry"
	"socketBoard/internal/models/whiteboard"
)

type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectCreate
	EffectUndo
	EffectRedo
	EffectPickImage
	EffectFocusText
)

// Effect is work the toolbar asks the editor to perform.
type Effect struct {
	Kind     EffectKind
	ItemType whiteboard.ItemType
	ItemID   string
}

// Context is what the toolbar needs to know about the board.
type Context struct {
	// LastText is the most recently created text item, if any.
	LastText *whiteboard.Item
}

// Select applies a toolbar tap.
func (s State) Select(tool Tool, ctx Context) (State, Effect) {
	s = s.clone()
	switch tool {
	case Undo:
		return s, Effect{Kind: EffectUndo}
	case Redo:
		return s, Effect{Kind: EffectRedo}
	case Shapes:
		s.Active = Shapes
		return s.toggleMenu(MenuShapes), Effect{}
	case Arrow:
		s.Active = Arrow
		return s.toggleMenu(MenuArrow), Effect{}
	case Pen:
		s.Active = Pen
		s.PenMode = PenDraw
		return s.toggleMenu(MenuPen), Effect{}
	}

	s = s.closeMenus()
	s.PenMode = PenDraw

	switch tool {
	case Text:
		wasText := s.Active == Text
		s.Active = Text
		if wasText && s.ActiveTextID == "" && ctx.LastText != nil {
			return s.FocusText(*ctx.LastText), Effect{Kind: EffectFocusText, ItemID: ctx.LastText.ID}
		}
		return s, Effect{Kind: EffectCreate, ItemType: whiteboard.ItemText}
	case Checkbox:
		return s, Effect{Kind: EffectCreate, ItemType: whiteboard.ItemCheckbox}
	case Note:
		return s, Effect{Kind: EffectCreate, ItemType: whiteboard.ItemNote}
	case Image:
		return s, Effect{Kind: EffectPickImage}
	case Select, Hand:
		s.Active = tool
		s.ActiveTextID = ""
	}
	return s, Effect{}
}

// ToggleSubmenu opens or closes a panel of the open menu. Panels that do
// not belong to the open menu are ignored. Any pen panel other than the
// pen type switches the pen back to drawing.
func (s State) ToggleSubmenu(sub Submenu) State {
	if !slices.Contains(menuSubmenus[s.Menu], sub) {
		return s
	}
	s = s.clone()
	if s.Submenu == sub {
		s.Submenu = SubmenuNone
	} else {
		s.Submenu = sub
	}
	if s.Menu == MenuPen && sub != SubmenuType {
		s.PenMode = PenDraw
	}
	return s
}

// SelectEraser switches the pen into erase mode and closes its panels.
func (s State) SelectEraser() State {
	s = s.clone()
	s.Active = Pen
	s.PenMode = PenErase
	s.Submenu = SubmenuNone
	return s
}

// SetPenType picks pen or marker and returns to drawing.
func (s State) SetPenType(t whiteboard.PenStyle) State {
	s = s.clone()
	s.PenType = t
	s.PenMode = PenDraw
	return s
}

func (s State) SetSmoothing(sm freehand.Smoothing) State {
	s.Smoothing = sm
	return s.clone()
}

// ChooseShape remembers the shape and asks for it to be created.
func (s State) ChooseShape(t whiteboard.ItemType) (State, Effect) {
	s = s.clone().closeMenus()
	if t.IsShape() || t == whiteboard.ItemLine {
		s.LastShape = t
	}
	return s, Effect{Kind: EffectCreate, ItemType: t}
}

func (s State) SetShapeColor(c string) State {
	s.ShapeColor = c
	return s.clone()
}

func (s State) SetNoteColor(c string) State {
	s.NoteColor = c
	return s.clone()
}

// SetArrowVariant picks the connector variant and closes the arrow menu.
func (s State) SetArrowVariant(v geometry.ArrowVariant) State {
	s = s.clone()
	s.Active = Arrow
	s.ArrowVariant = v
	return s.closeMenus()
}

// SetStrokeWidth makes w current and moves it to the front of the recent
// widths, keeping the five most recent distinct values.
func (s State) SetStrokeWidth(w float64) State {
	s = s.clone()
	s.StrokeWidth = w
	hist := []float64{w}
	for _, h := range s.StrokeHistory {
		if h != w {
			hist = append(hist, h)
		}
	}
	if len(hist) > strokeHistoryLen {
		hist = hist[:strokeHistoryLen]
	}
	s.StrokeHistory = hist
	return s
}

// StrokeChoices lists recent widths followed by presets, deduplicated.
func (s State) StrokeChoices() []float64 {
	var out []float64
	for _, w := range append(slices.Clone(s.StrokeHistory), StrokePresets...) {
		if !slices.Contains(out, w) {
			out = append(out, w)
		}
	}
	if len(out) > strokeChoices {
		out = out[:strokeChoices]
	}
	return out
}

// FocusText binds the font panel to a text item.
func (s State) FocusText(it whiteboard.Item) State {
	s = s.clone()
	s.Active = Text
	s.ActiveTextID = it.ID
	s.Font = FontOf(it)
	return s
}

// BlurText unbinds the font panel.
func (s State) BlurText() State {
	s.ActiveTextID = ""
	return s.clone()
}

// SetFont changes the font panel. The returned patch, if non-nil, should
// be applied to the focused text item.
func (s State) SetFont(f Font) (State, *whiteboard.Patch) {
	s = s.clone()
	s.Font = f
	if s.ActiveTextID == "" {
		return s, nil
	}
	return s, &whiteboard.Patch{
		FontFamily: whiteboard.Ptr(f.Family),
		FontWeight: whiteboard.Ptr(f.Weight),
		FontSize:   whiteboard.Ptr(f.Size),
	}
}
