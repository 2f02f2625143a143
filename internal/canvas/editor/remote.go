package editor

import (
	"socketBoard/internal/canvas"
	"socketBoard/internal/canvas/presence"
	"socketBoard/internal/canvas/store"
	"socketBoard/internal/models/whiteboard"
)

// ApplyRemote stores an item received from another session. The record
// replaces the local one wholesale: the last write wins. Remote changes
// are neither recorded in history nor counted as local changes.
func (e *Editor) ApplyRemote(item whiteboard.Item) error {
	e.mu.Lock()
	defer e.unlock()
	if item.ID == "" {
		return store.ErrEmptyID
	}
	if e.pen.CurrentStroke() == item.ID {
		canvas.Logger().Debug("remote write to active stroke", "stroke", item.ID)
	}
	if err := e.store.Replace(item); err != nil {
		return err
	}
	if item.Type == whiteboard.ItemText && e.lastText == "" {
		e.lastText = item.ID
	}
	return nil
}

// ApplyRemoteDelete removes an item deleted by another session. Unknown
// ids are ignored.
func (e *Editor) ApplyRemoteDelete(id string) {
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
	_ = e.store.Delete(id)
	if e.selected == id {
		e.selected = ""
	}
	if e.lastText == id {
		e.lastText = ""
	}
}

// ApplyRemoteOrder restacks the board in the order another session
// published. Ids missing locally are skipped and items absent from ids
// stay on top.
func (e *Editor) ApplyRemoteOrder(ids []string) {
	e.mu.Lock()
	defer e.unlock()
	e.store.Reorder(ids)
}

// ApplyPresence records a collaborator's cursor update.
func (e *Editor) ApplyPresence(p presence.Presence) {
	e.presence.Apply(p, e.opts.Now())
}

// RemoveCollaborator drops a collaborator that left the board.
func (e *Editor) RemoveCollaborator(id string) {
	e.presence.Leave(id)
}

// Collaborators lists the other users seen within the presence TTL.
func (e *Editor) Collaborators() []presence.Presence {
	return e.presence.Collaborators(e.opts.Now())
}

// PruneCollaborators forgets collaborators past the presence TTL.
func (e *Editor) PruneCollaborators() []string {
	return e.presence.Prune(e.opts.Now())
}
