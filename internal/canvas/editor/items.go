package editor

import (
	"reflect"
	"slices"

	"github.com/google/uuid"

	"socketBoard/internal/canvas/geometry"
	"socketBoard/internal/canvas/store"
	"socketBoard/internal/models/whiteboard"
)

// Default sizes of newly created items.
const (
	defaultImageWidth  = 300.0
	defaultImageHeight = 200.0
	defaultLineLength  = 150.0
	defaultCircleR     = 50.0

	connectorSlop = 6.0
)

var defaultSizes = map[whiteboard.ItemType][2]float64{
	whiteboard.ItemBox:       {200, 150},
	whiteboard.ItemTriangle:  {100, 100},
	whiteboard.ItemDiamond:   {140, 140},
	whiteboard.ItemHexagon:   {160, 140},
	whiteboard.ItemStar:      {160, 160},
	whiteboard.ItemPentagon:  {160, 150},
	whiteboard.ItemTrapezoid: {200, 120},
	whiteboard.ItemCloud:     {200, 120},
	whiteboard.ItemSpeech:    {200, 140},
	whiteboard.ItemHeart:     {160, 150},
	whiteboard.ItemImage:     {defaultImageWidth, defaultImageHeight},
}

// live applies gesture and stroke writes. It never records history; the
// editor records one entry per finished gesture instead.
type live struct {
	e       *Editor
	touched bool
}

func (l *live) AddItem(item whiteboard.Item) error {
	if err := l.e.store.Add(item); err != nil {
		return err
	}
	l.touched = true
	l.e.changed()
	l.e.publishItem(item)
	return nil
}

func (l *live) UpdateItem(id string, patch whiteboard.Patch) error {
	if patch.LastEditedBy == nil && l.e.opts.UserID != "" {
		patch.LastEditedBy = whiteboard.Ptr(l.e.opts.UserID)
	}
	it, err := l.e.store.Update(id, patch)
	if err != nil {
		return err
	}
	l.touched = true
	l.e.changed()
	l.e.publishItem(it)
	return nil
}

func (l *live) DeleteItem(id string) error {
	if err := l.e.store.Delete(id); err != nil {
		return err
	}
	l.touched = true
	if l.e.selected == id {
		l.e.selected = ""
	}
	l.e.changed()
	l.e.publishDelete(id)
	return nil
}

func (e *Editor) changed() {
	e.dirty = true
	e.revision++
	e.lastChange = e.opts.Now()
}

// record runs fn as one undoable step. Nothing is recorded when fn fails
// before touching the store.
func (e *Editor) record(fn func() error) error {
	pre := e.store.Snapshot()
	e.live.touched = false
	err := fn()
	if e.live.touched {
		e.history.Record(pre)
	}
	e.live.touched = false
	return err
}

// newItem builds an item of type t with its default geometry at a random
// spot near the top-left of the canvas.
func (e *Editor) newItem(t whiteboard.ItemType) whiteboard.Item {
	user := e.opts.UserID
	it := whiteboard.Item{
		ID:           uuid.NewString(),
		Type:         t,
		Position:     whiteboard.Pt(100+e.opts.Rand()*200, 100+e.opts.Rand()*200),
		CreatedBy:    user,
		LastEditedBy: user,
	}
	if size, ok := defaultSizes[t]; ok {
		it.Width, it.Height = size[0], size[1]
	}
	switch t {
	case whiteboard.ItemCircle:
		it.Radius = defaultCircleR
	case whiteboard.ItemLine:
		it.Width = defaultLineLength
		it.StrokeWidth = e.tools.StrokeWidth
		it.ShapeColor = e.tools.ShapeColor
	case whiteboard.ItemArrow:
		it.Points = whiteboard.Points{whiteboard.Pt(0, 0), whiteboard.Pt(defaultLineLength, 0)}
		it.ShapeColor = whiteboard.DefaultArrowColor
		it.StrokeWidth = e.tools.StrokeWidth
		it.ArrowStyle = whiteboard.ArrowHeadTriangle
		it.Metadata = map[string]any{"style": string(e.tools.ArrowVariant)}
	case whiteboard.ItemText:
		f := e.tools.Font
		it.FontFamily, it.FontWeight, it.FontSize = f.Family, f.Weight, f.Size
	case whiteboard.ItemNote:
		it.Color = e.tools.NoteColor
	case whiteboard.ItemCheckbox:
		it.Checked = false
	}
	if t.IsShape() {
		it.ShapeColor = e.tools.ShapeColor
		it.StrokeWidth = e.tools.StrokeWidth
	}
	return it
}

func (e *Editor) addRecorded(it whiteboard.Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if err := e.record(func() error { return e.live.AddItem(it) }); err != nil {
		return err
	}
	if it.Type == whiteboard.ItemText {
		e.lastText = it.ID
	}
	e.selected = it.ID
	return nil
}

// AddItem creates an item of type t with its default attributes.
func (e *Editor) AddItem(t whiteboard.ItemType) (whiteboard.Item, error) {
	e.mu.Lock()
	defer e.unlock()
	return e.addItem(t)
}

func (e *Editor) addItem(t whiteboard.ItemType) (whiteboard.Item, error) {
	it := e.newItem(t)
	if err := e.addRecorded(it); err != nil {
		return whiteboard.Item{}, err
	}
	if t == whiteboard.ItemText {
		e.tools = e.tools.FocusText(it)
	}
	return it, nil
}

// InsertItem adds a fully built item, assigning an id when it has none.
func (e *Editor) InsertItem(it whiteboard.Item) (whiteboard.Item, error) {
	e.mu.Lock()
	defer e.unlock()
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.CreatedBy == "" {
		it.CreatedBy = e.opts.UserID
	}
	if err := e.addRecorded(it); err != nil {
		return whiteboard.Item{}, err
	}
	return it, nil
}

// UpdateItem applies patch as one undoable step.
func (e *Editor) UpdateItem(id string, patch whiteboard.Patch) error {
	e.mu.Lock()
	defer e.unlock()
	return e.record(func() error { return e.live.UpdateItem(id, patch) })
}

// DeleteItem removes an item as one undoable step.
func (e *Editor) DeleteItem(id string) error {
	e.mu.Lock()
	defer e.unlock()
	if e.gestureOn(id) {
		e.gestures.Cancel()
		e.pending = nil
	}
	if e.pen.CurrentStroke() == id {
		e.pen.End()
		e.pending = nil
	}
	return e.record(func() error { return e.live.DeleteItem(id) })
}

func (e *Editor) BringToFront(id string) error {
	e.mu.Lock()
	defer e.unlock()
	return e.reorder(id, e.store.BringToFront)
}

func (e *Editor) SendToBack(id string) error {
	e.mu.Lock()
	defer e.unlock()
	return e.reorder(id, e.store.SendToBack)
}

func (e *Editor) reorder(id string, fn func(string) error) error {
	if !e.store.Has(id) {
		return store.ErrItemNotFound
	}
	e.history.Record(e.store.Snapshot())
	if err := fn(id); err != nil {
		return err
	}
	e.changed()
	e.publishOrder()
	return nil
}

// ItemAt returns the topmost item whose outline bounds contain the canvas
// point p. Strokes and connectors are hit along their points.
func (e *Editor) ItemAt(p whiteboard.Point) (whiteboard.Item, bool) {
	e.mu.Lock()
	defer e.unlock()
	return e.itemAt(p)
}

func (e *Editor) itemAt(p whiteboard.Point) (whiteboard.Item, bool) {
	items := e.store.Items()
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if hitItem(it, p) {
			return it, true
		}
	}
	return whiteboard.Item{}, false
}

func hitItem(it whiteboard.Item, p whiteboard.Point) bool {
	switch it.Type {
	case whiteboard.ItemFreehand:
		return false
	case whiteboard.ItemLine, whiteboard.ItemArrow:
		start, end := it.ArrowEndpoints()
		r := geometry.Polyline([]whiteboard.Point{start, end}).Bounds()
		slop := whiteboard.Pt(connectorSlop, connectorSlop)
		r.Min, r.Max = r.Min.Sub(slop), r.Max.Add(slop)
		return r.Contains(p)
	}
	outline, err := geometry.ItemOutline(it)
	if err != nil {
		return false
	}
	return outline.Bounds().Contains(p)
}

// restore swaps in a snapshot and broadcasts what changed.
func (e *Editor) restore(before, after []whiteboard.Item) {
	e.store.Restore(after)
	e.changed()
	old := make(map[string]whiteboard.Item, len(before))
	for _, it := range before {
		old[it.ID] = it
	}
	for _, it := range after {
		if prev, ok := old[it.ID]; !ok || !reflect.DeepEqual(prev, it) {
			e.publishItem(it)
		}
		delete(old, it.ID)
	}
	for id := range old {
		e.publishDelete(id)
	}
	if !slices.Equal(itemIDs(before), itemIDs(after)) {
		e.publishOrder()
	}
	if e.selected != "" && !e.store.Has(e.selected) {
		e.selected = ""
	}
}

func itemIDs(items []whiteboard.Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// settle finishes whatever gesture is in progress so history operations
// see a consistent board.
func (e *Editor) settle() {
	if s, ok := e.gestures.Active(); ok {
		_ = e.gestures.End(s.LastPointer.X, s.LastPointer.Y)
		e.commitPending()
	}
	if e.pen.Drawing() {
		e.pen.End()
		e.commitPending()
	}
	e.erasing = false
	e.arrow = nil
}

func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.unlock()
	return e.undo()
}

func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.unlock()
	return e.redo()
}

func (e *Editor) undo() bool {
	e.settle()
	cur := e.store.Snapshot()
	prev, ok := e.history.Undo(cur)
	if !ok {
		return false
	}
	e.restore(cur, prev)
	return true
}

func (e *Editor) redo() bool {
	e.settle()
	cur := e.store.Snapshot()
	next, ok := e.history.Redo(cur)
	if !ok {
		return false
	}
	e.restore(cur, next)
	return true
}

func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.unlock()
	return e.history.CanUndo()
}

func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.unlock()
	return e.history.CanRedo()
}
