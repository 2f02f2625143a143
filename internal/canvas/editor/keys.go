package editor

import (
	"context"

	"socketBoard/internal/canvas/tools"
)

// HandleKey runs the shortcut bound to a key press. While a text item is
// focused only chords with ctrl are handled, so typing is not mistaken
// for commands. It reports whether the key was bound.
func (e *Editor) HandleKey(ctx context.Context, key string, ctrl, shift bool) (bool, error) {
	cmd, ok := tools.Shortcut(key, ctrl, shift)
	if !ok {
		return false, nil
	}
	if !ctrl && e.Tools().ActiveTextID != "" {
		return false, nil
	}
	switch cmd.Kind {
	case tools.CmdSelectTool:
		_, err := e.SelectTool(cmd.Tool)
		return true, err
	case tools.CmdAddItem:
		_, err := e.AddItem(cmd.ItemType)
		return true, err
	case tools.CmdZoomIn:
		e.ZoomIn()
	case tools.CmdZoomOut:
		e.ZoomOut()
	case tools.CmdZoomReset:
		e.ResetZoom()
	case tools.CmdUndo:
		e.Undo()
	case tools.CmdRedo:
		e.Redo()
	case tools.CmdSave:
		return true, e.Save(ctx)
	case tools.CmdDelete:
		if id := e.Selected(); id != "" {
			return true, e.DeleteItem(id)
		}
	}
	return true, nil
}
