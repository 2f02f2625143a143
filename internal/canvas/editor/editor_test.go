package editor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socketBoard/internal/canvas/geometry"
	"socketBoard/internal/canvas/presence"
	"socketBoard/internal/canvas/store"
	"socketBoard/internal/canvas/tools"
	"socketBoard/internal/errs"
	"socketBoard/internal/models/whiteboard"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type fakePersister struct {
	saved  [][]whiteboard.Item
	err    error
	during func()
}

func (f *fakePersister) SaveItems(_ context.Context, items []whiteboard.Item) error {
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, items)
	return nil
}

type fakePublisher struct {
	items   []whiteboard.Item
	deletes []string
	orders  [][]string
	cursors []whiteboard.Point

	// onItem runs inside PublishItem
	onItem func(whiteboard.Item)
}

func (f *fakePublisher) PublishItem(it whiteboard.Item) error {
	f.items = append(f.items, it)
	if f.onItem != nil {
		f.onItem(it)
	}
	return nil
}

func (f *fakePublisher) PublishOrder(ids []string) error {
	f.orders = append(f.orders, ids)
	return nil
}

func (f *fakePublisher) PublishDelete(id string) error {
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakePublisher) PublishCursor(p whiteboard.Point) error {
	f.cursors = append(f.cursors, p)
	return nil
}

type fakeUploader struct {
	calls       int
	name        string
	contentType string
}

func (f *fakeUploader) UploadImage(_ context.Context, name, contentType string, _ []byte) (string, error) {
	f.calls++
	f.name, f.contentType = name, contentType
	return "http://files.local/whiteboard-images/whiteboards/" + name, nil
}

func newEditor(t *testing.T, items ...whiteboard.Item) (*Editor, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	e := New(Options{
		BoardID: "board-1",
		UserID:  "me",
		Now:     c.Now,
		Rand:    func() float64 { return 0.5 },
	}, items...)
	return e, c
}

func box(id string, x, y float64) whiteboard.Item {
	return whiteboard.Item{ID: id, Type: whiteboard.ItemBox, Position: whiteboard.Pt(x, y), Width: 200, Height: 150}
}

func TestAddItemDefaults(t *testing.T) {
	e, _ := newEditor(t)

	b, err := e.AddItem(whiteboard.ItemBox)
	require.NoError(t, err)
	assert.Equal(t, whiteboard.Pt(200, 200), b.Position)
	assert.Equal(t, 200.0, b.Width)
	assert.Equal(t, 150.0, b.Height)
	assert.Equal(t, "blue", b.ShapeColor)
	assert.Equal(t, "me", b.CreatedBy)

	c, err := e.AddItem(whiteboard.ItemCircle)
	require.NoError(t, err)
	w, h := c.Size()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 100.0, h)

	a, err := e.AddItem(whiteboard.ItemArrow)
	require.NoError(t, err)
	start, end := a.ArrowEndpoints()
	assert.Equal(t, 150.0, end.X-start.X)
	assert.Equal(t, whiteboard.DefaultArrowColor, a.ShapeColor)
	assert.Equal(t, "straight", a.ArrowVariant())

	n, err := e.AddItem(whiteboard.ItemNote)
	require.NoError(t, err)
	assert.Equal(t, "yellow", n.Color)

	txt, err := e.AddItem(whiteboard.ItemText)
	require.NoError(t, err)
	assert.Equal(t, tools.DefaultFont.Family, txt.FontFamily)
	assert.Equal(t, txt.ID, e.Tools().ActiveTextID)

	assert.Len(t, e.Items(), 5)
	assert.True(t, e.HasChanges())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e, _ := newEditor(t)
	var states [][]whiteboard.Item
	states = append(states, e.Items())

	a, err := e.AddItem(whiteboard.ItemBox)
	require.NoError(t, err)
	states = append(states, e.Items())
	_, err = e.AddItem(whiteboard.ItemStar)
	require.NoError(t, err)
	states = append(states, e.Items())
	require.NoError(t, e.UpdateItem(a.ID, whiteboard.Patch{Content: whiteboard.Ptr("hello")}))
	states = append(states, e.Items())
	require.NoError(t, e.DeleteItem(a.ID))
	states = append(states, e.Items())

	for i := len(states) - 2; i >= 0; i-- {
		require.True(t, e.Undo())
		assert.Equal(t, states[i], e.Items(), "after undo to state %d", i)
	}
	assert.False(t, e.CanUndo())
	assert.False(t, e.Undo())

	for i := 1; i < len(states); i++ {
		require.True(t, e.Redo())
		assert.Equal(t, states[i], e.Items(), "after redo to state %d", i)
	}
	assert.False(t, e.CanRedo())
}

func TestUndoDoesNotTouchTools(t *testing.T) {
	e, _ := newEditor(t)
	_, err := e.AddItem(whiteboard.ItemBox)
	require.NoError(t, err)
	_, err = e.SelectTool(tools.Hand)
	require.NoError(t, err)

	eff, err := e.SelectTool(tools.Undo)
	require.NoError(t, err)
	assert.Equal(t, tools.EffectUndo, eff.Kind)
	assert.Empty(t, e.Items())
	assert.Equal(t, tools.Hand, e.Tools().Active)
}

func TestDragCommitsOnce(t *testing.T) {
	pub := &fakePublisher{}
	e, _ := newEditor(t, box("b1", 100, 100))
	e.opts.Publisher = pub
	e.view.SetZoom(2)

	require.NoError(t, e.PointerDown(300, 300))
	assert.Equal(t, "b1", e.Selected())
	require.NoError(t, e.PointerMove(320, 310))
	require.NoError(t, e.PointerMove(340, 320))

	id, off, ok := e.DragPreview()
	require.True(t, ok)
	assert.Equal(t, "b1", id)
	assert.Equal(t, whiteboard.Pt(40, 20), off)
	it, _ := e.Item("b1")
	assert.Equal(t, whiteboard.Pt(100, 100), it.Position, "drag does not write before release")
	assert.Empty(t, pub.items)

	require.NoError(t, e.PointerUp(340, 320))
	it, _ = e.Item("b1")
	assert.Equal(t, whiteboard.Pt(120, 110), it.Position)
	assert.Len(t, pub.items, 1)

	require.True(t, e.Undo())
	it, _ = e.Item("b1")
	assert.Equal(t, whiteboard.Pt(100, 100), it.Position)
	assert.False(t, e.CanUndo())
}

func TestDragSizelessItems(t *testing.T) {
	for _, typ := range []whiteboard.ItemType{whiteboard.ItemNote, whiteboard.ItemText, whiteboard.ItemCheckbox} {
		t.Run(string(typ), func(t *testing.T) {
			e, _ := newEditor(t)
			it, err := e.AddItem(typ)
			require.NoError(t, err)
			assert.Zero(t, it.Width)

			start := it.Position.Add(whiteboard.Pt(20, 10))
			require.NoError(t, e.PointerDown(start.X, start.Y))
			assert.Equal(t, it.ID, e.Selected())
			require.NoError(t, e.PointerMove(start.X+50, start.Y))
			require.NoError(t, e.PointerUp(start.X+50, start.Y))

			got, _ := e.Item(it.ID)
			assert.Equal(t, it.Position.Add(whiteboard.Pt(50, 0)), got.Position)
		})
	}
}

func TestClickWithoutMoveRecordsNothing(t *testing.T) {
	e, _ := newEditor(t, box("b1", 0, 0))
	require.NoError(t, e.PointerDown(10, 10))
	require.NoError(t, e.PointerUp(10, 10))
	assert.False(t, e.CanUndo())
	assert.False(t, e.HasChanges())
}

func TestResizeIsOneUndoStep(t *testing.T) {
	e, _ := newEditor(t, box("b1", 0, 0))
	require.NoError(t, e.BeginResize("b1", 200, 150))
	require.NoError(t, e.PointerMove(230, 160))
	require.NoError(t, e.PointerMove(250, 180))
	it, _ := e.Item("b1")
	assert.Equal(t, 250.0, it.Width)
	assert.Equal(t, 180.0, it.Height)
	assert.Equal(t, "me", it.LastEditedBy)

	require.NoError(t, e.PointerUp(250, 180))
	require.True(t, e.Undo())
	it, _ = e.Item("b1")
	assert.Equal(t, 200.0, it.Width)
	assert.False(t, e.CanUndo())

	assert.ErrorIs(t, e.BeginResize("missing", 0, 0), store.ErrItemNotFound)
}

func TestFreehandStrokeIsOneUndoStep(t *testing.T) {
	e, _ := newEditor(t)
	_, err := e.SelectTool(tools.Pen)
	require.NoError(t, err)

	require.NoError(t, e.PointerDown(10, 10))
	for x := 20.0; x <= 100; x += 10 {
		require.NoError(t, e.PointerMove(x, 10))
	}
	require.NoError(t, e.PointerUp(100, 10))

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, whiteboard.ItemFreehand, items[0].Type)
	assert.Greater(t, len(items[0].Points), 5)
	assert.Equal(t, "me", items[0].CreatedBy)

	require.True(t, e.Undo())
	assert.Empty(t, e.Items())
	assert.False(t, e.CanUndo())
}

func TestToolSwitchEndsStroke(t *testing.T) {
	e, _ := newEditor(t)
	_, err := e.SelectTool(tools.Pen)
	require.NoError(t, err)
	require.NoError(t, e.PointerDown(10, 10))
	require.NoError(t, e.PointerMove(40, 10))

	_, err = e.SelectTool(tools.Select)
	require.NoError(t, err)
	stroke := e.Items()[0]
	n := len(stroke.Points)

	require.NoError(t, e.PointerMove(400, 400))
	require.NoError(t, e.PointerUp(400, 400))
	after, ok := e.Item(stroke.ID)
	require.True(t, ok)
	assert.Len(t, after.Points, n)
	assert.True(t, e.CanUndo())
}

func TestEraseWholeStroke(t *testing.T) {
	stroke := whiteboard.Item{
		ID:     "s1",
		Type:   whiteboard.ItemFreehand,
		Points: whiteboard.Points{whiteboard.Pt(50, 50), whiteboard.Pt(60, 50), whiteboard.Pt(70, 50)},
	}
	e, _ := newEditor(t, stroke, box("b1", 300, 300))
	_, err := e.SelectTool(tools.Pen)
	require.NoError(t, err)
	e.SelectEraser()
	assert.True(t, e.Tools().Erasing())

	require.NoError(t, e.PointerDown(500, 500))
	assert.Len(t, e.Items(), 2)
	require.NoError(t, e.PointerMove(65, 60))
	require.NoError(t, e.PointerUp(65, 60))

	_, ok := e.Item("s1")
	assert.False(t, ok)
	_, ok = e.Item("b1")
	assert.True(t, ok, "eraser only removes strokes")

	require.True(t, e.Undo())
	_, ok = e.Item("s1")
	assert.True(t, ok)
}

func TestArrowDrawing(t *testing.T) {
	e, _ := newEditor(t)
	e.StartArrow(geometry.ArrowDashed)
	assert.Equal(t, tools.Arrow, e.Tools().Active)

	require.NoError(t, e.PointerDown(10, 10))
	require.NoError(t, e.PointerMove(60, 10))
	d, ok := e.ArrowPreview()
	require.True(t, ok)
	assert.Equal(t, 50.0, d.Length())
	assert.Equal(t, []float64{5, 5}, d.Geometry().Dash)
	require.NoError(t, e.PointerUp(110, 10))

	_, ok = e.ArrowPreview()
	assert.False(t, ok)
	items := e.Items()
	require.Len(t, items, 1)
	a := items[0]
	assert.Equal(t, whiteboard.ItemArrow, a.Type)
	assert.Equal(t, whiteboard.Pt(10, 10), a.Position)
	start, end := a.ArrowEndpoints()
	assert.Equal(t, whiteboard.Pt(10, 10), start)
	assert.Equal(t, whiteboard.Pt(110, 10), end)
	assert.Equal(t, "dashed", a.ArrowVariant())

	require.NoError(t, e.PointerDown(10, 10))
	require.NoError(t, e.PointerUp(12, 11))
	assert.Len(t, e.Items(), 1, "a tap does not create an arrow")
}

func TestHandPans(t *testing.T) {
	e, _ := newEditor(t, box("b1", 0, 0))
	require.NoError(t, e.PointerDown(10, 10))
	require.NoError(t, e.PointerUp(10, 10))
	assert.Equal(t, whiteboard.Point{}, e.Viewport().Pan, "select tool never pans")

	_, err := e.SelectTool(tools.Hand)
	require.NoError(t, err)
	require.NoError(t, e.PointerDown(10, 10))
	require.NoError(t, e.PointerMove(30, 50))
	require.NoError(t, e.PointerUp(30, 50))
	assert.Equal(t, whiteboard.Pt(20, 40), e.Viewport().Pan)
	it, _ := e.Item("b1")
	assert.Equal(t, whiteboard.Pt(0, 0), it.Position)
}

func TestSaveSuccess(t *testing.T) {
	p := &fakePersister{}
	e, c := newEditor(t)
	e.opts.Persister = p
	var sawSaving bool
	p.during = func() { sawSaving = e.Saving() }

	_, err := e.AddItem(whiteboard.ItemBox)
	require.NoError(t, err)
	require.True(t, e.HasChanges())

	c.now = c.now.Add(time.Minute)
	require.NoError(t, e.Save(context.Background()))
	assert.True(t, sawSaving)
	assert.False(t, e.Saving())
	assert.False(t, e.HasChanges())
	assert.NoError(t, e.LastSaveError())
	assert.Equal(t, c.now, e.LastSaved())
	require.Len(t, p.saved, 1)
	assert.Len(t, p.saved[0], 1)
}

func TestSaveFailureKeepsLocalState(t *testing.T) {
	boom := errors.New("db down")
	e, _ := newEditor(t)
	e.opts.Persister = &fakePersister{err: boom}
	_, err := e.AddItem(whiteboard.ItemBox)
	require.NoError(t, err)

	assert.ErrorIs(t, e.Save(context.Background()), boom)
	assert.True(t, e.HasChanges())
	assert.ErrorIs(t, e.LastSaveError(), boom)
	assert.Len(t, e.Items(), 1)
	assert.True(t, e.CanUndo())
}

func TestEditDuringSaveStaysDirty(t *testing.T) {
	p := &fakePersister{}
	e, _ := newEditor(t)
	e.opts.Persister = p
	p.during = func() {
		_, err := e.AddItem(whiteboard.ItemNote)
		require.NoError(t, err)
	}
	require.NoError(t, e.Save(context.Background()))
	assert.True(t, e.HasChanges())
	assert.Len(t, e.Items(), 1)
}

func TestSaveWithoutPersister(t *testing.T) {
	e, _ := newEditor(t)
	assert.ErrorIs(t, e.Save(context.Background()), errs.ErrPersisterMissing)
}

func TestAutosaveDue(t *testing.T) {
	e, c := newEditor(t)
	e.opts.Persister = &fakePersister{}
	assert.False(t, e.AutosaveDue(DefaultAutosaveInterval))

	_, err := e.AddItem(whiteboard.ItemBox)
	require.NoError(t, err)
	c.now = c.now.Add(5 * time.Second)
	assert.False(t, e.AutosaveDue(DefaultAutosaveInterval))
	c.now = c.now.Add(5 * time.Second)
	assert.True(t, e.AutosaveDue(DefaultAutosaveInterval))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestUploadImage(t *testing.T) {
	up := &fakeUploader{}
	e, _ := newEditor(t)
	e.opts.Uploader = up

	it, err := e.UploadImage(context.Background(), "cat.png", pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, whiteboard.ItemImage, it.Type)
	assert.Equal(t, "image/png", up.contentType)
	assert.True(t, strings.HasSuffix(up.name, ".png"))
	assert.Contains(t, it.ImageURL, up.name)
	assert.Equal(t, 300.0, it.Width)
}

func TestUploadImageRejectsBeforeUpload(t *testing.T) {
	up := &fakeUploader{}
	e, _ := newEditor(t)
	e.opts.Uploader = up

	_, err := e.UploadImage(context.Background(), "notes.txt", []byte("plain text, not an image"))
	assert.ErrorIs(t, err, errs.ErrNotAnImage)

	e.opts.MaxUploadBytes = 10
	_, err = e.UploadImage(context.Background(), "cat.png", pngBytes(t))
	assert.ErrorIs(t, err, errs.ErrImageTooLarge)

	assert.Zero(t, up.calls)
	assert.Empty(t, e.Items())
}

func TestApplyRemoteLastWriteWins(t *testing.T) {
	e, _ := newEditor(t, box("b1", 0, 0))

	first := box("b1", 10, 10)
	first.Content = "first"
	second := box("b1", 20, 20)
	second.Content = "second"
	require.NoError(t, e.ApplyRemote(first))
	require.NoError(t, e.ApplyRemote(second))

	it, _ := e.Item("b1")
	assert.Equal(t, "second", it.Content)
	assert.Equal(t, whiteboard.Pt(20, 20), it.Position)
	assert.False(t, e.CanUndo())
	assert.False(t, e.HasChanges())

	require.NoError(t, e.ApplyRemote(box("b2", 0, 0)))
	assert.Len(t, e.Items(), 2)

	e.ApplyRemoteDelete("b2")
	e.ApplyRemoteDelete("unknown")
	assert.Len(t, e.Items(), 1)
}

func TestRemoteDeleteDuringDrag(t *testing.T) {
	e, _ := newEditor(t, box("b1", 0, 0))
	require.NoError(t, e.PointerDown(10, 10))
	require.NoError(t, e.PointerMove(50, 50))
	e.ApplyRemoteDelete("b1")
	require.NoError(t, e.PointerUp(50, 50))
	assert.Empty(t, e.Items())
	assert.False(t, e.CanUndo())
}

func TestCollaborators(t *testing.T) {
	e, c := newEditor(t)
	cur := whiteboard.Pt(5, 5)
	e.ApplyPresence(presence.Presence{ID: "me", Name: "Me", Cursor: &cur})
	e.ApplyPresence(presence.Presence{ID: "u1", Name: "Ana", Cursor: &cur})

	got := e.Collaborators()
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Name)

	c.now = c.now.Add(presence.DefaultTTL + time.Second)
	assert.Empty(t, e.Collaborators())
	assert.Equal(t, []string{"u1"}, e.PruneCollaborators())
}

func TestCursorAndItemPublishing(t *testing.T) {
	pub := &fakePublisher{}
	e, _ := newEditor(t)
	e.opts.Publisher = pub
	e.opts.Cursors = pub
	e.view.SetZoom(2)

	require.NoError(t, e.PointerMove(100, 40))
	assert.Equal(t, []whiteboard.Point{whiteboard.Pt(50, 20)}, pub.cursors)

	b, err := e.AddItem(whiteboard.ItemBox)
	require.NoError(t, err)
	require.Len(t, pub.items, 1)

	require.True(t, e.Undo())
	assert.Equal(t, []string{b.ID}, pub.deletes)
	require.True(t, e.Redo())
	assert.Len(t, pub.items, 2)
}

func TestSetFontRestylesFocusedText(t *testing.T) {
	e, _ := newEditor(t)
	txt, err := e.AddItem(whiteboard.ItemText)
	require.NoError(t, err)

	require.NoError(t, e.SetFont(tools.Font{Family: "Georgia, serif", Weight: 700, Size: 24}))
	it, _ := e.Item(txt.ID)
	assert.Equal(t, "Georgia, serif", it.FontFamily)
	assert.Equal(t, 700, it.FontWeight)
	assert.Equal(t, 24.0, it.FontSize)

	e.BlurText()
	require.NoError(t, e.SetFont(tools.DefaultFont))
	it, _ = e.Item(txt.ID)
	assert.Equal(t, 24.0, it.FontSize)

	assert.ErrorIs(t, e.FocusText("missing"), ErrNotText)
	require.NoError(t, e.FocusText(txt.ID))
	assert.Equal(t, txt.ID, e.Tools().ActiveTextID)
}

func TestHandleKey(t *testing.T) {
	e, _ := newEditor(t)
	ctx := context.Background()

	ok, err := e.HandleKey(ctx, "r", false, false)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, e.Items(), 1)

	ok, err = e.HandleKey(ctx, "Delete", false, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, e.Items())

	_, err = e.HandleKey(ctx, "z", true, false)
	require.NoError(t, err)
	assert.Len(t, e.Items(), 1)

	_, err = e.HandleKey(ctx, "+", false, false)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, e.Viewport().Zoom, 1e-9)

	ok, _ = e.HandleKey(ctx, "q", false, false)
	assert.False(t, ok)

	_, err = e.AddItem(whiteboard.ItemText)
	require.NoError(t, err)
	ok, _ = e.HandleKey(ctx, "r", false, false)
	assert.False(t, ok, "plain keys type into the focused text")
	assert.Len(t, e.Items(), 2)

	ok, err = e.HandleKey(ctx, "s", true, false)
	assert.True(t, ok)
	assert.ErrorIs(t, err, errs.ErrPersisterMissing)
}

func TestZOrder(t *testing.T) {
	e, _ := newEditor(t, box("a", 0, 0), box("b", 0, 0))
	it, ok := e.ItemAt(whiteboard.Pt(10, 10))
	require.True(t, ok)
	assert.Equal(t, "b", it.ID)

	require.NoError(t, e.BringToFront("a"))
	it, _ = e.ItemAt(whiteboard.Pt(10, 10))
	assert.Equal(t, "a", it.ID)

	require.True(t, e.Undo())
	it, _ = e.ItemAt(whiteboard.Pt(10, 10))
	assert.Equal(t, "b", it.ID)
}

func TestZOrderIsPublished(t *testing.T) {
	pub := &fakePublisher{}
	e, _ := newEditor(t, box("a", 0, 0), box("b", 0, 0), box("c", 0, 0))
	e.opts.Publisher = pub

	require.NoError(t, e.BringToFront("a"))
	require.NoError(t, e.SendToBack("c"))
	assert.Equal(t, [][]string{{"b", "c", "a"}, {"c", "b", "a"}}, pub.orders)
	assert.Empty(t, pub.items)

	require.True(t, e.Undo())
	require.Len(t, pub.orders, 3)
	assert.Equal(t, []string{"b", "c", "a"}, pub.orders[2])

	err := e.BringToFront("missing")
	assert.ErrorIs(t, err, store.ErrItemNotFound)
	assert.Len(t, pub.orders, 3)
}

func TestApplyRemoteOrder(t *testing.T) {
	e, _ := newEditor(t, box("a", 0, 0), box("b", 0, 0), box("c", 0, 0))
	e.ApplyRemoteOrder([]string{"c", "x", "a"})

	var ids []string
	for _, it := range e.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
	assert.False(t, e.CanUndo())
	assert.False(t, e.HasChanges())
}

func TestPublisherMayCallBackIntoEditor(t *testing.T) {
	pub := &fakePublisher{}
	e, _ := newEditor(t)
	e.opts.Publisher = pub

	var seen []int
	pub.onItem = func(whiteboard.Item) {
		seen = append(seen, len(e.Items()))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = e.AddItem(whiteboard.ItemBox)
		_, _ = e.AddItem(whiteboard.ItemNote)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("editor locked while publishing")
	}

	assert.Equal(t, []int{1, 2}, seen)
	require.Len(t, pub.items, 2)
	assert.Equal(t, whiteboard.ItemBox, pub.items[0].Type)
	assert.Equal(t, whiteboard.ItemNote, pub.items[1].Type)
}

func TestPublisherMayEditFromCallback(t *testing.T) {
	pub := &fakePublisher{}
	e, _ := newEditor(t)
	e.opts.Publisher = pub

	pub.onItem = func(it whiteboard.Item) {
		if it.Type == whiteboard.ItemBox {
			_, _ = e.AddItem(whiteboard.ItemStar)
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = e.AddItem(whiteboard.ItemBox)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("editor locked while publishing")
	}

	require.Len(t, pub.items, 2)
	assert.Equal(t, whiteboard.ItemBox, pub.items[0].Type)
	assert.Equal(t, whiteboard.ItemStar, pub.items[1].Type)
	assert.Len(t, e.Items(), 2)
}
