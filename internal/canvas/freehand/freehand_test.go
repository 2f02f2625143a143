package freehand

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socketBoard/internal/canvas/store"
	"socketBoard/internal/canvas/viewport"
	"socketBoard/internal/models/whiteboard"
)

type storeWriter struct{ *store.Store }

func (w storeWriter) AddItem(it whiteboard.Item) error { return w.Add(it) }
func (w storeWriter) UpdateItem(id string, p whiteboard.Patch) error {
	_, err := w.Update(id, p)
	return err
}
func (w storeWriter) DeleteItem(id string) error { return w.Delete(id) }

func newEngine(zoom float64, items ...whiteboard.Item) (*Engine, *store.Store) {
	s := store.New(items...)
	v := viewport.New()
	v.Zoom = zoom
	e := NewEngine(v, s, storeWriter{s})
	n := 0
	e.newID = func() string { n++; return fmt.Sprintf("stroke-%d", n) }
	return e, s
}

func TestStrokeAttributes(t *testing.T) {
	w, o := StrokeAttributes(whiteboard.PenStylePen, 3)
	assert.Equal(t, 3.0, w)
	assert.Equal(t, 1.0, o)

	w, o = StrokeAttributes(whiteboard.PenStyleMarker, 2)
	assert.Equal(t, 12.0, w)
	assert.Equal(t, 0.45, o)

	w, _ = StrokeAttributes(whiteboard.PenStyleMarker, 6)
	assert.Equal(t, 18.0, w)
}

func TestSmooth(t *testing.T) {
	last := whiteboard.Pt(0, 0)
	raw := whiteboard.Pt(9, 3)
	assert.Equal(t, raw, Smooth(last, raw, SmoothingLow))
	assert.Equal(t, whiteboard.Pt(3, 1), Smooth(last, raw, SmoothingMedium))
	got := Smooth(last, raw, SmoothingHigh)
	assert.InDelta(t, 1.8, got.X, 1e-12)
	assert.InDelta(t, 0.6, got.Y, 1e-12)
}

func TestBeginCreatesStrokeWithFirstPoint(t *testing.T) {
	e, s := newEngine(1)
	id, err := e.Begin(10, 20, Options{Style: whiteboard.PenStyleMarker, BaseWidth: 2, Color: "red", Author: "u1"})
	require.NoError(t, err)

	it, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, whiteboard.ItemFreehand, it.Type)
	assert.Equal(t, whiteboard.Points{{X: 10, Y: 20}}, it.Points)
	assert.Equal(t, 12.0, it.StrokeWidth)
	assert.Equal(t, 0.45, it.Opacity)
	assert.Equal(t, "u1", it.CreatedBy)
	assert.True(t, e.Drawing())
}

func TestConsecutivePointsRespectMinDelta(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, sm := range []Smoothing{SmoothingLow, SmoothingMedium, SmoothingHigh} {
		for _, zoom := range []float64{0.3, 1, 3} {
			e, s := newEngine(zoom)
			id, err := e.Begin(0, 0, Options{Smoothing: sm})
			require.NoError(t, err)
			x, y := 0.0, 0.0
			for i := 0; i < 500; i++ {
				x += r.Float64()*3 - 1
				y += r.Float64()*3 - 1
				_, err := e.Extend(x, y)
				require.NoError(t, err)
			}
			e.End()

			it, _ := s.Get(id)
			for i := 1; i < len(it.Points); i++ {
				d := it.Points[i].Distance(it.Points[i-1])
				assert.GreaterOrEqual(t, d, MinDelta-1e-12, "smoothing=%d zoom=%v i=%d", sm, zoom, i)
			}
		}
	}
}

func TestJitterIsRejected(t *testing.T) {
	e, s := newEngine(1)
	id, _ := e.Begin(0, 0, Options{})
	ok, err := e.Extend(0.3, 0.3)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, _ = e.Extend(5, 0)
	assert.True(t, ok)
	it, _ := s.Get(id)
	assert.Len(t, it.Points, 2)
}

func TestEndFreezesStroke(t *testing.T) {
	e, s := newEngine(1)
	id, _ := e.Begin(0, 0, Options{})
	_, _ = e.Extend(10, 0)
	gotID, n := e.End()
	assert.Equal(t, id, gotID)
	assert.Equal(t, 2, n)

	ok, err := e.Extend(50, 50)
	assert.NoError(t, err)
	assert.False(t, ok)
	it, _ := s.Get(id)
	assert.Len(t, it.Points, 2)

	gotID, _ = e.End()
	assert.Empty(t, gotID)
}

func TestEraseWithinRadius(t *testing.T) {
	strokes := []whiteboard.Item{
		{ID: "a", Type: whiteboard.ItemFreehand, Points: whiteboard.Points{{X: 100, Y: 100}, {X: 110, Y: 100}}},
		{ID: "b", Type: whiteboard.ItemFreehand, Points: whiteboard.Points{{X: 300, Y: 300}}},
		{ID: "box", Type: whiteboard.ItemBox, Position: whiteboard.Pt(100, 100), Width: 50, Height: 50},
	}
	tests := []struct {
		name    string
		zoom    float64
		p       whiteboard.Point
		deleted string
	}{
		{"inside at zoom 1", 1, whiteboard.Pt(125, 100), "a"},
		{"on the edge", 1, whiteboard.Pt(130, 100), "a"},
		{"outside at zoom 1", 1, whiteboard.Pt(131, 100), ""},
		{"zoomed in shrinks radius", 2, whiteboard.Pt(125, 100), ""},
		{"zoomed out grows radius", 0.5, whiteboard.Pt(145, 100), "a"},
		{"far from everything", 1, whiteboard.Pt(600, 600), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, s := newEngine(tt.zoom, strokes...)
			// canvas point -> client point at this zoom with no pan
			id, err := e.Erase(tt.p.X*tt.zoom, tt.p.Y*tt.zoom)
			require.NoError(t, err)
			assert.Equal(t, tt.deleted, id)
			want := len(strokes)
			if tt.deleted != "" {
				want--
			}
			assert.Equal(t, want, s.Len())
			assert.True(t, s.Has("box"), "only freehand items are erased")
		})
	}
}

func TestEraseDeletesOnlyFirstMatch(t *testing.T) {
	e, s := newEngine(1,
		whiteboard.Item{ID: "a", Type: whiteboard.ItemFreehand, Points: whiteboard.Points{{X: 0, Y: 0}}},
		whiteboard.Item{ID: "b", Type: whiteboard.ItemFreehand, Points: whiteboard.Points{{X: 1, Y: 1}}},
	)
	id, err := e.Erase(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "a", id)
	assert.Equal(t, 1, s.Len())
}
