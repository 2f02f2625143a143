package editor

import (
	"socketBoard/internal/canvas/freehand"
	"socketBoard/internal/canvas/geometry"
	"socketBoard/internal/canvas/tools"
	"socketBoard/internal/models/whiteboard"
)

// SelectTool applies a toolbar tap and performs the resulting effect.
// EffectPickImage is returned for the caller to open a file picker and
// follow up with UploadImage.
func (e *Editor) SelectTool(tool tools.Tool) (tools.Effect, error) {
	e.mu.Lock()
	defer e.unlock()

	var ctx tools.Context
	if it, ok := e.store.Get(e.lastText); ok {
		ctx.LastText = &it
	}
	next, eff := e.tools.Select(tool, ctx)
	e.setTools(next)

	switch eff.Kind {
	case tools.EffectCreate:
		_, err := e.addItem(eff.ItemType)
		return eff, err
	case tools.EffectUndo:
		e.undo()
	case tools.EffectRedo:
		e.redo()
	case tools.EffectFocusText:
		e.selected = eff.ItemID
	}
	return eff, nil
}

// setTools swaps the toolbar state and stops input modes the new state
// no longer allows. Leaving the pen mid-stroke finalizes the stroke.
func (e *Editor) setTools(next tools.State) {
	e.tools = next
	if !next.Drawing() && e.pen.Drawing() {
		e.pen.End()
		e.commitPending()
	}
	if !next.Erasing() {
		e.erasing = false
	}
	if next.Active != tools.Arrow {
		e.arrow = nil
	}
	if next.Active != tools.Hand && e.view.Panning() {
		e.view.EndPan()
	}
}

func (e *Editor) updateTools(fn func(tools.State) tools.State) {
	e.mu.Lock()
	defer e.unlock()
	e.setTools(fn(e.tools))
}

// ChooseShape picks a shape from the shapes menu and creates it.
func (e *Editor) ChooseShape(t whiteboard.ItemType) (whiteboard.Item, error) {
	e.mu.Lock()
	defer e.unlock()
	next, eff := e.tools.ChooseShape(t)
	e.setTools(next)
	return e.addItem(eff.ItemType)
}

func (e *Editor) ToggleSubmenu(sub tools.Submenu) {
	e.updateTools(func(s tools.State) tools.State { return s.ToggleSubmenu(sub) })
}

func (e *Editor) SelectEraser() {
	e.updateTools(tools.State.SelectEraser)
}

func (e *Editor) SetPenType(t whiteboard.PenStyle) {
	e.updateTools(func(s tools.State) tools.State { return s.SetPenType(t) })
}

func (e *Editor) SetSmoothing(sm freehand.Smoothing) {
	e.updateTools(func(s tools.State) tools.State { return s.SetSmoothing(sm) })
}

func (e *Editor) SetStrokeWidth(w float64) {
	e.updateTools(func(s tools.State) tools.State { return s.SetStrokeWidth(w) })
}

func (e *Editor) SetShapeColor(c string) {
	e.updateTools(func(s tools.State) tools.State { return s.SetShapeColor(c) })
}

func (e *Editor) SetNoteColor(c string) {
	e.updateTools(func(s tools.State) tools.State { return s.SetNoteColor(c) })
}

// StartArrow enters connector drawing with the given variant.
func (e *Editor) StartArrow(v geometry.ArrowVariant) {
	e.updateTools(func(s tools.State) tools.State { return s.SetArrowVariant(v) })
}

// FocusText binds the font panel to a text item.
func (e *Editor) FocusText(id string) error {
	e.mu.Lock()
	defer e.unlock()
	it, ok := e.store.Get(id)
	if !ok || it.Type != whiteboard.ItemText {
		return ErrNotText
	}
	e.setTools(e.tools.FocusText(it))
	e.selected = id
	return nil
}

func (e *Editor) BlurText() {
	e.updateTools(tools.State.BlurText)
}

// SetFont changes the font panel and restyles the focused text item.
func (e *Editor) SetFont(f tools.Font) error {
	e.mu.Lock()
	defer e.unlock()
	next, patch := e.tools.SetFont(f)
	e.setTools(next)
	if patch == nil {
		return nil
	}
	return e.record(func() error { return e.live.UpdateItem(next.ActiveTextID, *patch) })
}
