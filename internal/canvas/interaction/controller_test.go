package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socketBoard/internal/canvas/store"
	"socketBoard/internal/models/whiteboard"
)

type fixedScale float64

func (f fixedScale) Scale() float64 { return float64(f) }

type storeUpdater struct {
	s     *store.Store
	calls int
}

func (u *storeUpdater) UpdateItem(id string, p whiteboard.Patch) error {
	u.calls++
	_, err := u.s.Update(id, p)
	return err
}

func setup(zoom float64, items ...whiteboard.Item) (*Controller, *storeUpdater) {
	u := &storeUpdater{s: store.New(items...)}
	return NewController(fixedScale(zoom), u), u
}

func TestResizeCircleScenario(t *testing.T) {
	circle := whiteboard.Item{ID: "c", Type: whiteboard.ItemCircle, Position: whiteboard.Pt(100, 100), Width: 100, Height: 100}
	c, u := setup(1, circle)

	_, err := c.BeginResize(circle, 500, 500)
	require.NoError(t, err)
	require.NoError(t, c.Move(530, 520))
	require.NoError(t, c.Move(550, 530))
	require.NoError(t, c.End(550, 530))

	got, _ := u.s.Get("c")
	assert.Equal(t, 150.0, got.Width)
	assert.Equal(t, 130.0, got.Height)
	assert.Equal(t, whiteboard.Pt(100, 100), got.Position)
}

func TestResizeNeverBelowMinimum(t *testing.T) {
	types := []whiteboard.ItemType{
		whiteboard.ItemBox, whiteboard.ItemTriangle, whiteboard.ItemDiamond, whiteboard.ItemHexagon,
		whiteboard.ItemPentagon, whiteboard.ItemTrapezoid, whiteboard.ItemHeart, whiteboard.ItemCircle,
		whiteboard.ItemNote, whiteboard.ItemStar, whiteboard.ItemCloud, whiteboard.ItemSpeech,
	}
	deltas := []whiteboard.Point{{X: -1, Y: -1}, {X: -500, Y: -10}, {X: -10000, Y: -10000}, {X: 3, Y: -300}}
	for _, typ := range types {
		for _, zoom := range []float64{0.3, 1, 3} {
			for _, d := range deltas {
				item := whiteboard.Item{ID: "x", Type: typ, Width: 200, Height: 150}
				c, u := setup(zoom, item)
				_, err := c.BeginResize(item, 0, 0)
				require.NoError(t, err)
				require.NoError(t, c.Move(d.X, d.Y))
				require.NoError(t, c.End(d.X, d.Y))

				got, _ := u.s.Get("x")
				assert.GreaterOrEqual(t, got.Width, 40.0, "%s zoom=%v d=%v", typ, zoom, d)
				assert.GreaterOrEqual(t, got.Height, 30.0, "%s zoom=%v d=%v", typ, zoom, d)
			}
		}
	}
}

func TestResizeDividesByZoom(t *testing.T) {
	box := whiteboard.Item{ID: "b", Type: whiteboard.ItemBox, Width: 200, Height: 150}
	c, u := setup(2, box)
	_, _ = c.BeginResize(box, 0, 0)
	require.NoError(t, c.End(100, 60))
	got, _ := u.s.Get("b")
	assert.Equal(t, 250.0, got.Width)
	assert.Equal(t, 180.0, got.Height)
}

func TestResizeSpecialCases(t *testing.T) {
	line := whiteboard.Item{ID: "l", Type: whiteboard.ItemLine, Width: 150}
	c, u := setup(1, line)
	_, _ = c.BeginResize(line, 0, 0)
	require.NoError(t, c.End(-500, 80))
	got, _ := u.s.Get("l")
	assert.Equal(t, 20.0, got.Width)
	assert.Zero(t, got.Height)

	star := whiteboard.Item{ID: "s", Type: whiteboard.ItemStar, Width: 160, Height: 160}
	c, u = setup(1, star)
	_, _ = c.BeginResize(star, 0, 0)
	require.NoError(t, c.End(10, 40))
	got, _ = u.s.Get("s")
	assert.Equal(t, 200.0, got.Width)
	assert.Equal(t, 200.0, got.Height)

	img := whiteboard.Item{ID: "i", Type: whiteboard.ItemImage, Width: 300, Height: 200}
	c, u = setup(1, img)
	_, _ = c.BeginResize(img, 0, 0)
	require.NoError(t, c.End(-1000, -1000))
	got, _ = u.s.Get("i")
	assert.Equal(t, 100.0, got.Width)
	assert.Equal(t, 100.0, got.Height)
}

func TestDragCommitsOnceOnRelease(t *testing.T) {
	note := whiteboard.Item{ID: "n", Type: whiteboard.ItemNote, Position: whiteboard.Pt(10, 10)}
	c, u := setup(2, note)

	_, err := c.BeginDrag(note, 100, 100)
	require.NoError(t, err)
	require.NoError(t, c.Move(120, 110))
	require.NoError(t, c.Move(160, 140))

	off, ok := c.Preview()
	assert.True(t, ok)
	assert.Equal(t, whiteboard.Pt(60, 40), off)
	assert.Zero(t, u.calls, "no canvas writes during the drag")

	require.NoError(t, c.End(160, 140))
	assert.Equal(t, 1, u.calls)
	got, _ := u.s.Get("n")
	assert.Equal(t, whiteboard.Pt(40, 30), got.Position)

	_, active := c.Active()
	assert.False(t, active)
}

func TestSingleGesture(t *testing.T) {
	a := whiteboard.Item{ID: "a", Type: whiteboard.ItemBox}
	c, _ := setup(1, a)
	_, err := c.BeginDrag(a, 0, 0)
	require.NoError(t, err)
	_, err = c.BeginResize(a, 0, 0)
	assert.ErrorIs(t, err, ErrGestureActive)
	c.Cancel()
	_, err = c.BeginResize(a, 0, 0)
	assert.NoError(t, err)
}

func TestStrayEventsAreNoops(t *testing.T) {
	c, u := setup(1)
	assert.NoError(t, c.Move(10, 10))
	assert.NoError(t, c.End(10, 10))
	_, ok := c.Preview()
	assert.False(t, ok)
	assert.Zero(t, u.calls)
}
