// Package history keeps undo and redo stacks of full item snapshots.
package history

import (
	"time"

	"socketBoard/internal/models/whiteboard"
)

// DefaultLimit bounds each stack.
const DefaultLimit = 50

type Entry struct {
	Items []whiteboard.Item
	At    time.Time
}

type History struct {
	undo  []Entry
	redo  []Entry
	limit int
	now   func() time.Time
}

// New creates a History holding at most limit entries per stack.
// A non-positive limit selects DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit, now: time.Now}
}

func cloneItems(items []whiteboard.Item) []whiteboard.Item {
	out := make([]whiteboard.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func (h *History) push(stack []Entry, items []whiteboard.Item) []Entry {
	stack = append(stack, Entry{Items: cloneItems(items), At: h.now()})
	if len(stack) > h.limit {
		stack = stack[len(stack)-h.limit:]
	}
	return stack
}

// Record stores the pre-mutation state and clears the redo stack.
func (h *History) Record(pre []whiteboard.Item) {
	h.undo = h.push(h.undo, pre)
	h.redo = nil
}

// Undo pops the latest snapshot, saving current for Redo. It reports
// false when there is nothing to undo.
func (h *History) Undo(current []whiteboard.Item) ([]whiteboard.Item, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = h.push(h.redo, current)
	return cloneItems(e.Items), true
}

// Redo mirrors Undo.
func (h *History) Redo(current []whiteboard.Item) ([]whiteboard.Item, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = h.push(h.undo, current)
	return cloneItems(e.Items), true
}

func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Clear drops both stacks, e.g. after loading a different board.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
