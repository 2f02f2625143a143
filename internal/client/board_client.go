// Package client connects an editor session to a board server: local
// changes go out over the board socket and remote events come back in
// through handler callbacks.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"socketBoard/internal/canvas/editor"
	"socketBoard/internal/canvas/presence"
	"socketBoard/internal/enums"
	"socketBoard/internal/errs"
	socketModels "socketBoard/internal/models/socket"
	"socketBoard/internal/models/whiteboard"
)

// Handlers receive events sent by other sessions of the board. Nil
// handlers are skipped. They run on the client's read goroutine.
type Handlers struct {
	OnUpsert  func(item whiteboard.Item)
	OnDelete  func(itemID string)
	OnReorder func(itemIDs []string)
	OnCursor  func(p presence.Presence)
	OnLeave   func(userID string)
	OnError   func(message string)
}

type Options struct {
	// BaseURL is the server's http root, e.g. http://localhost:8000.
	BaseURL    string
	UserID     string
	Name       string
	Color      string
	Handlers   Handlers
	HTTPClient *http.Client
	Dialer     *websocket.Dialer
}

type BoardClient struct {
	opts    Options
	boardID string
	conn    *websocket.Conn

	writeMu  sync.Mutex
	handlers atomic.Pointer[Handlers]

	saveMu    sync.Mutex
	pendingMu sync.Mutex
	pending   chan error

	done     chan struct{}
	closeErr error
}

var (
	_ editor.Persister       = (*BoardClient)(nil)
	_ editor.CursorPublisher = (*BoardClient)(nil)
	_ editor.ItemPublisher   = (*BoardClient)(nil)
	_ editor.ImageUploader   = (*BoardClient)(nil)
)

// Dial joins the board socket and starts reading events.
func Dial(ctx context.Context, boardID string, opts Options) (*BoardClient, error) {
	if opts.UserID == "" {
		return nil, errs.ErrInvalidUserId
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	wsURL, err := socketURL(opts.BaseURL, boardID, opts)
	if err != nil {
		return nil, err
	}
	conn, resp, err := opts.Dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, errors.Wrapf(err, "dial board %s: status %d", boardID, resp.StatusCode)
		}
		return nil, errors.Wrapf(err, "dial board %s", boardID)
	}

	bc := &BoardClient{
		opts:    opts,
		boardID: boardID,
		conn:    conn,
		done:    make(chan struct{}),
	}
	bc.SetHandlers(opts.Handlers)
	go bc.readLoop()
	return bc, nil
}

func socketURL(baseURL, boardID string, opts Options) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", errors.Wrap(err, "parse base url")
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/whiteboards/" + url.PathEscape(boardID)
	q := url.Values{"user_id": {opts.UserID}}
	if opts.Name != "" {
		q.Set("name", opts.Name)
	}
	if opts.Color != "" {
		q.Set("color", opts.Color)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// SetHandlers replaces the event callbacks. Events that arrive before a
// handler is set are dropped.
func (bc *BoardClient) SetHandlers(h Handlers) {
	bc.handlers.Store(&h)
}

// Done is closed when the connection is gone.
func (bc *BoardClient) Done() <-chan struct{} {
	return bc.done
}

// Err reports why the read loop stopped.
func (bc *BoardClient) Err() error {
	<-bc.done
	return bc.closeErr
}

func (bc *BoardClient) Close() error {
	bc.writeMu.Lock()
	_ = bc.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	bc.writeMu.Unlock()
	return bc.conn.Close()
}

func (bc *BoardClient) send(event string, payload any) error {
	e, err := socketModels.NewSocketEvent(event, bc.boardID, bc.opts.UserID, payload)
	if err != nil {
		return err
	}
	bc.writeMu.Lock()
	defer bc.writeMu.Unlock()
	select {
	case <-bc.done:
		return errs.ErrSocketClosed
	default:
	}
	return bc.conn.WriteJSON(e)
}

func (bc *BoardClient) PublishItem(item whiteboard.Item) error {
	return bc.send(enums.SOCKET_EVENT_UPSERT_ITEM, item)
}

func (bc *BoardClient) PublishDelete(id string) error {
	return bc.send(enums.SOCKET_EVENT_DELETE_ITEM, socketModels.ItemDeletedPayload{ItemID: id})
}

// PublishOrder sends the board's stacking order, ids bottom to top.
func (bc *BoardClient) PublishOrder(ids []string) error {
	return bc.send(enums.SOCKET_EVENT_REORDER_ITEMS, socketModels.ItemsReorderedPayload{ItemIDs: ids})
}

func (bc *BoardClient) PublishCursor(p whiteboard.Point) error {
	return bc.send(enums.SOCKET_EVENT_CURSOR_MOVED, socketModels.CursorPayload{
		UserID: bc.opts.UserID,
		Name:   bc.opts.Name,
		Color:  bc.opts.Color,
		Cursor: p,
	})
}

// SaveItems stores the whole board and waits for the server to confirm.
func (bc *BoardClient) SaveItems(ctx context.Context, items []whiteboard.Item) error {
	bc.saveMu.Lock()
	defer bc.saveMu.Unlock()

	result := make(chan error, 1)
	bc.setPending(result)
	defer bc.setPending(nil)

	if err := bc.send(enums.SOCKET_EVENT_SAVE_BOARD, socketModels.SaveBoardPayload{Items: items}); err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-bc.done:
		return errs.ErrSocketClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (bc *BoardClient) setPending(ch chan error) {
	bc.pendingMu.Lock()
	bc.pending = ch
	bc.pendingMu.Unlock()
}

func (bc *BoardClient) resolvePending(err error) bool {
	bc.pendingMu.Lock()
	ch := bc.pending
	bc.pending = nil
	bc.pendingMu.Unlock()
	if ch == nil {
		return false
	}
	ch <- err
	return true
}

func (bc *BoardClient) readLoop() {
	defer close(bc.done)
	for {
		var event socketModels.SocketEvent
		if err := bc.conn.ReadJSON(&event); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				bc.closeErr = err
			}
			return
		}
		if err := bc.dispatch(event); err != nil {
			log.Printf("[BoardClient] %s event: %v", event.Event, err)
		}
	}
}

func (bc *BoardClient) dispatch(event socketModels.SocketEvent) error {
	h := *bc.handlers.Load()
	switch event.Event {
	case enums.SOCKET_EVENT_UPSERT_ITEM:
		var item whiteboard.Item
		if err := json.Unmarshal(event.Payload, &item); err != nil {
			return err
		}
		if h.OnUpsert != nil {
			h.OnUpsert(item)
		}
	case enums.SOCKET_EVENT_DELETE_ITEM:
		var deleted socketModels.ItemDeletedPayload
		if err := json.Unmarshal(event.Payload, &deleted); err != nil {
			return err
		}
		if h.OnDelete != nil {
			h.OnDelete(deleted.ItemID)
		}
	case enums.SOCKET_EVENT_REORDER_ITEMS:
		var reordered socketModels.ItemsReorderedPayload
		if err := json.Unmarshal(event.Payload, &reordered); err != nil {
			return err
		}
		if h.OnReorder != nil {
			h.OnReorder(reordered.ItemIDs)
		}
	case enums.SOCKET_EVENT_CURSOR_MOVED:
		var moved socketModels.CursorPayload
		if err := json.Unmarshal(event.Payload, &moved); err != nil {
			return err
		}
		if h.OnCursor != nil {
			cursor := moved.Cursor
			h.OnCursor(presence.Presence{ID: moved.UserID, Name: moved.Name, Color: moved.Color, Cursor: &cursor})
		}
	case enums.SOCKET_EVENT_PRESENCE_LEFT:
		var left socketModels.PresenceLeftPayload
		if err := json.Unmarshal(event.Payload, &left); err != nil {
			return err
		}
		if h.OnLeave != nil {
			h.OnLeave(left.UserID)
		}
	case enums.SOCKET_EVENT_BOARD_SAVED:
		bc.resolvePending(nil)
	case enums.SOCKET_EVENT_ERROR:
		var failure socketModels.ErrorPayload
		if err := json.Unmarshal(event.Payload, &failure); err != nil {
			return err
		}
		if failure.Event == enums.SOCKET_EVENT_SAVE_BOARD && bc.resolvePending(errors.New(failure.Message)) {
			return nil
		}
		if h.OnError != nil {
			h.OnError(failure.Message)
		}
	default:
		return errs.ErrUnknownEvent
	}
	return nil
}

type uploadResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// UploadImage posts the file to the board's image endpoint and returns
// the stored URL.
func (bc *BoardClient) UploadImage(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", fileName)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/whiteboards/%s/images", bc.opts.BaseURL, url.PathEscape(bc.boardID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := bc.opts.HTTPClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "upload image")
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrapf(err, "upload image: status %d", resp.StatusCode)
	}
	if !out.Success || resp.StatusCode >= http.StatusBadRequest {
		message := http.StatusText(resp.StatusCode)
		if len(out.Errors) > 0 {
			message = out.Errors[0]
		}
		return "", errors.Errorf("upload image: %s", message)
	}
	return out.Data.URL, nil
}

// EditorHandlers applies remote events to ed.
func EditorHandlers(ed *editor.Editor) Handlers {
	return Handlers{
		OnUpsert: func(item whiteboard.Item) {
			if err := ed.ApplyRemote(item); err != nil {
				log.Printf("[BoardClient] apply remote %s: %v", item.ID, err)
			}
		},
		OnDelete:  ed.ApplyRemoteDelete,
		OnReorder: ed.ApplyRemoteOrder,
		OnCursor:  ed.ApplyPresence,
		OnLeave:   ed.RemoveCollaborator,
	}
}
