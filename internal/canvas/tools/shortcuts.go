package tools

import (
	"strings"

	"socketBoard/internal/models/whiteboard"
)

type CommandKind int

const (
	CmdSelectTool CommandKind = iota + 1
	CmdAddItem
	CmdZoomIn
	CmdZoomOut
	CmdZoomReset
	CmdUndo
	CmdRedo
	CmdSave
	CmdDelete
)

// Command is the action bound to a key chord.
type Command struct {
	Kind     CommandKind
	Tool     Tool
	ItemType whiteboard.ItemType
}

type chord struct {
	key   string
	ctrl  bool
	shift bool
}

var shortcuts = map[chord]Command{
	{key: "v"}: {Kind: CmdSelectTool, Tool: Select},
	{key: "h"}: {Kind: CmdSelectTool, Tool: Hand},
	{key: "t"}: {Kind: CmdSelectTool, Tool: Text},
	{key: "p"}: {Kind: CmdSelectTool, Tool: Pen},
	{key: "a"}: {Kind: CmdSelectTool, Tool: Arrow},

	{key: "r"}: {Kind: CmdAddItem, ItemType: whiteboard.ItemBox},
	{key: "o"}: {Kind: CmdAddItem, ItemType: whiteboard.ItemCircle},
	{key: "l"}: {Kind: CmdAddItem, ItemType: whiteboard.ItemLine},
	{key: "n"}: {Kind: CmdAddItem, ItemType: whiteboard.ItemNote},

	{key: "+"}:             {Kind: CmdZoomIn},
	{key: "="}:             {Kind: CmdZoomIn},
	{key: "-"}:             {Kind: CmdZoomOut},
	{key: "0"}:             {Kind: CmdZoomReset},
	{key: "+", ctrl: true}: {Kind: CmdZoomIn},
	{key: "=", ctrl: true}: {Kind: CmdZoomIn},
	{key: "-", ctrl: true}: {Kind: CmdZoomOut},
	{key: "0", ctrl: true}: {Kind: CmdZoomReset},

	{key: "z", ctrl: true}:              {Kind: CmdUndo},
	{key: "z", ctrl: true, shift: true}: {Kind: CmdRedo},
	{key: "y", ctrl: true}:              {Kind: CmdRedo},
	{key: "s", ctrl: true}:              {Kind: CmdSave},

	{key: "delete"}:    {Kind: CmdDelete},
	{key: "backspace"}: {Kind: CmdDelete},
}

// Shortcut resolves a key press. ctrl covers both Control and Meta.
func Shortcut(key string, ctrl, shift bool) (Command, bool) {
	cmd, ok := shortcuts[chord{key: strings.ToLower(key), ctrl: ctrl, shift: shift}]
	return cmd, ok
}
