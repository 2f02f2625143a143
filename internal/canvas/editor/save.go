package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"socketBoard/internal/canvas"
	"socketBoard/internal/errs"
	"socketBoard/internal/models/whiteboard"
	"socketBoard/internal/validators"
)

// DefaultAutosaveInterval is how long the board must stay unchanged
// before an autosave.
const DefaultAutosaveInterval = 10 * time.Second

// Save persists the whole board. A failed save keeps local state and
// leaves the board marked as changed; nothing is retried or rolled back.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.opts.Persister == nil {
		e.unlock()
		return errs.ErrPersisterMissing
	}
	if e.saving {
		e.unlock()
		return errs.ErrSaveInProgress
	}
	e.saving = true
	rev := e.revision
	items := e.store.Items()
	e.unlock()

	err := e.opts.Persister.SaveItems(ctx, items)

	e.mu.Lock()
	defer e.unlock()
	e.saving = false
	if err != nil {
		e.lastSaveErr = err
		canvas.Logger().Warn("save failed", "board", e.opts.BoardID, "error", err)
		return err
	}
	e.lastSaveErr = nil
	e.lastSaved = e.opts.Now()
	if e.revision == rev {
		e.dirty = false
	}
	return nil
}

// Saving reports whether a save is in flight.
func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.unlock()
	return e.saving
}

// HasChanges reports local edits not yet saved.
func (e *Editor) HasChanges() bool {
	e.mu.Lock()
	defer e.unlock()
	return e.dirty
}

// LastSaveError is the error of the latest save, nil after a success.
func (e *Editor) LastSaveError() error {
	e.mu.Lock()
	defer e.unlock()
	return e.lastSaveErr
}

func (e *Editor) LastSaved() time.Time {
	e.mu.Lock()
	defer e.unlock()
	return e.lastSaved
}

// AutosaveDue reports whether the board has changes that have been left
// alone for at least interval.
func (e *Editor) AutosaveDue(interval time.Duration) bool {
	e.mu.Lock()
	defer e.unlock()
	if !e.dirty || e.saving || e.opts.Persister == nil {
		return false
	}
	return e.opts.Now().Sub(e.lastChange) >= interval
}

// RunAutosave saves whenever AutosaveDue holds, checking every tick, until
// ctx is done.
func (e *Editor) RunAutosave(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	tick := interval / 4
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if e.AutosaveDue(interval) {
				_ = e.Save(ctx)
			}
		}
	}
}

// UploadImage validates an image, uploads it and places it on the board.
// Invalid files are rejected before the uploader is called.
func (e *Editor) UploadImage(ctx context.Context, fileName string, data []byte) (whiteboard.Item, error) {
	info, err := validators.ValidateImage(fileName, data, e.opts.MaxUploadBytes)
	if err != nil {
		return whiteboard.Item{}, err
	}
	if e.opts.Uploader == nil {
		return whiteboard.Item{}, errs.ErrUploaderMissing
	}
	name := fmt.Sprintf("%s.%s", uuid.NewString(), info.Extension)
	url, err := e.opts.Uploader.UploadImage(ctx, name, info.ContentType, data)
	if err != nil {
		return whiteboard.Item{}, err
	}

	e.mu.Lock()
	defer e.unlock()
	it := e.newItem(whiteboard.ItemImage)
	it.ImageURL = url
	if err := e.addRecorded(it); err != nil {
		return whiteboard.Item{}, err
	}
	return it, nil
}
