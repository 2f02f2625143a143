package models

import (
	"sync"

	"github.com/gorilla/websocket"
)

// SocketClient is one websocket connection joined to a board.
type SocketClient struct {
	// ID identifies the connection; one user may hold several.
	ID     string
	Conn   *websocket.Conn
	UserId string
	Name   string
	Color  string
	// gorilla connections allow one concurrent writer
	WriteMu sync.Mutex
}

func (sc *SocketClient) WriteJSON(v any) error {
	sc.WriteMu.Lock()
	defer sc.WriteMu.Unlock()
	return sc.Conn.WriteJSON(v)
}

type SocketWhiteboardHub struct {
	// [whiteboard_id] => []*SocketClient
	Whiteboards map[string][]*SocketClient
	Mu          sync.Mutex
}
