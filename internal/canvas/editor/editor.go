// Package editor is the per-user whiteboard session. It owns the item
// store and routes pointer, toolbar and keyboard input to the viewport,
// the gesture controller, the freehand engine and the history, and
// talks to the outside world through small collaborator interfaces.
package editor

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"socketBoard/internal/canvas/freehand"
	"socketBoard/internal/canvas/history"
	"socketBoard/internal/canvas/interaction"
	"socketBoard/internal/canvas/presence"
	"socketBoard/internal/canvas/store"
	"socketBoard/internal/canvas/tools"
	"socketBoard/internal/canvas/viewport"
	"socketBoard/internal/models/whiteboard"
)

var ErrNotText = errors.New("editor: item is not a text item")

// Persister saves the whole item collection of a board.
type Persister interface {
	SaveItems(ctx context.Context, items []whiteboard.Item) error
}

// CursorPublisher shares the local cursor, in canvas coordinates.
type CursorPublisher interface {
	PublishCursor(p whiteboard.Point) error
}

// ItemPublisher broadcasts local item changes to other sessions.
// PublishOrder carries the full stacking order, bottom to top.
type ItemPublisher interface {
	PublishItem(item whiteboard.Item) error
	PublishDelete(id string) error
	PublishOrder(ids []string) error
}

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, fileName, contentType string, data []byte) (string, error)
}

type Options struct {
	BoardID string
	UserID  string
	Name    string

	Persister Persister
	Cursors   CursorPublisher
	Publisher ItemPublisher
	Uploader  ImageUploader

	HistoryLimit   int
	PresenceTTL    time.Duration
	MaxUploadBytes int64

	// Now and Rand are replaced in tests.
	Now  func() time.Time
	Rand func() float64
}

// Editor is safe for concurrent use; remote events usually arrive on a
// network goroutine while input arrives on the UI one.
type Editor struct {
	mu   sync.Mutex
	opts Options

	// publishes queued under mu, sent in order once it is released
	outMu  sync.Mutex
	outbox []func()
	sendMu sync.Mutex

	view     *viewport.Viewport
	store    *store.Store
	history  *history.History
	gestures *interaction.Controller
	pen      *freehand.Engine
	tools    tools.State
	presence *presence.Tracker

	live live

	// pending is the pre-gesture snapshot recorded once the gesture
	// changes something.
	pending  []whiteboard.Item
	erasing  bool
	arrow    *ArrowDraft
	selected string
	lastText string

	dirty       bool
	revision    uint64
	lastChange  time.Time
	saving      bool
	lastSaveErr error
	lastSaved   time.Time
}

// New opens a session over the given items.
func New(opts Options, items ...whiteboard.Item) *Editor {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.Float64
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = history.DefaultLimit
	}
	e := &Editor{
		opts:     opts,
		view:     viewport.New(),
		store:    store.New(items...),
		history:  history.New(opts.HistoryLimit),
		tools:    tools.Initial(),
		presence: presence.NewTracker(opts.UserID, opts.PresenceTTL),
	}
	e.live = live{e: e}
	e.gestures = interaction.NewController(e.view, &e.live)
	e.pen = freehand.NewEngine(e.view, e.store, &e.live)
	for _, it := range items {
		if it.Type == whiteboard.ItemText {
			e.lastText = it.ID
		}
	}
	return e
}

func (e *Editor) BoardID() string {
	return e.opts.BoardID
}

// Items returns a copy of the board's items in z-order.
func (e *Editor) Items() []whiteboard.Item {
	e.mu.Lock()
	defer e.unlock()
	return e.store.Items()
}

func (e *Editor) Item(id string) (whiteboard.Item, bool) {
	e.mu.Lock()
	defer e.unlock()
	return e.store.Get(id)
}

// Tools returns the toolbar state.
func (e *Editor) Tools() tools.State {
	e.mu.Lock()
	defer e.unlock()
	return e.tools
}

// Viewport returns a copy of the camera.
func (e *Editor) Viewport() viewport.Viewport {
	e.mu.Lock()
	defer e.unlock()
	return *e.view
}

// SetOrigin moves the canvas container in client space.
func (e *Editor) SetOrigin(x, y float64) {
	e.mu.Lock()
	defer e.unlock()
	e.view.Origin = whiteboard.Pt(x, y)
}

func (e *Editor) ZoomIn() {
	e.mu.Lock()
	defer e.unlock()
	e.view.ZoomIn()
}

func (e *Editor) ZoomOut() {
	e.mu.Lock()
	defer e.unlock()
	e.view.ZoomOut()
}

func (e *Editor) ResetZoom() {
	e.mu.Lock()
	defer e.unlock()
	e.view.Reset()
}

// Wheel zooms around the pointer.
func (e *Editor) Wheel(delta, clientX, clientY float64) {
	e.mu.Lock()
	defer e.unlock()
	e.view.ZoomAt(delta, clientX, clientY)
}

func (e *Editor) Selected() string {
	e.mu.Lock()
	defer e.unlock()
	return e.selected
}

func (e *Editor) Select(id string) {
	e.mu.Lock()
	defer e.unlock()
	if id == "" || e.store.Has(id) {
		e.selected = id
	}
}
