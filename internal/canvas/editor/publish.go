package editor

import (
	"socketBoard/internal/canvas"
	"socketBoard/internal/models/whiteboard"
)

// Publishes are queued while e.mu is held and sent by unlock.

func (e *Editor) enqueue(send func()) {
	e.outMu.Lock()
	e.outbox = append(e.outbox, send)
	e.outMu.Unlock()
}

func (e *Editor) outboxEmpty() bool {
	e.outMu.Lock()
	defer e.outMu.Unlock()
	return len(e.outbox) == 0
}

// unlock releases e.mu and flushes the outbox in order. Only one goroutine
// flushes at a time; a send that queues more work, or a goroutine that
// finds a flush running, leaves it to the flushing goroutine, which checks
// again after letting go of sendMu.
func (e *Editor) unlock() {
	e.mu.Unlock()
	for !e.outboxEmpty() {
		if !e.sendMu.TryLock() {
			return
		}
		for {
			e.outMu.Lock()
			batch := e.outbox
			e.outbox = nil
			e.outMu.Unlock()
			if len(batch) == 0 {
				break
			}
			for _, send := range batch {
				send()
			}
		}
		e.sendMu.Unlock()
	}
}

func (e *Editor) publishItem(it whiteboard.Item) {
	pub := e.opts.Publisher
	if pub == nil {
		return
	}
	it = it.Clone()
	e.enqueue(func() {
		if err := pub.PublishItem(it); err != nil {
			canvas.Logger().Warn("publish item failed", "item", it.ID, "error", err)
		}
	})
}

func (e *Editor) publishDelete(id string) {
	pub := e.opts.Publisher
	if pub == nil {
		return
	}
	e.enqueue(func() {
		if err := pub.PublishDelete(id); err != nil {
			canvas.Logger().Warn("publish delete failed", "item", id, "error", err)
		}
	})
}

// publishOrder sends the current stacking order.
func (e *Editor) publishOrder() {
	pub := e.opts.Publisher
	if pub == nil {
		return
	}
	ids := e.store.Order()
	e.enqueue(func() {
		if err := pub.PublishOrder(ids); err != nil {
			canvas.Logger().Warn("publish order failed", "board", e.opts.BoardID, "error", err)
		}
	})
}

func (e *Editor) publishCursor(p whiteboard.Point) {
	cur := e.opts.Cursors
	if cur == nil {
		return
	}
	e.enqueue(func() {
		if err := cur.PublishCursor(p); err != nil {
			canvas.Logger().Warn("publish cursor failed", "error", err)
		}
	})
}
