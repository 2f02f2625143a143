package models

import (
	"encoding/json"

	"socketBoard/internal/models/whiteboard"
)

// SocketEvent is the envelope of every message on a board socket.
type SocketEvent struct {
	Event        string          `json:"event"`
	WhiteboardID string          `json:"whiteboard_id,omitempty"`
	SenderID     string          `json:"sender_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

type ItemDeletedPayload struct {
	ItemID string `json:"item_id"`
}

// ItemsReorderedPayload lists item ids bottom to top.
type ItemsReorderedPayload struct {
	ItemIDs []string `json:"item_ids"`
}

type CursorPayload struct {
	UserID string           `json:"user_id"`
	Name   string           `json:"name"`
	Color  string           `json:"color"`
	Cursor whiteboard.Point `json:"cursor"`
}

type PresenceLeftPayload struct {
	UserID string `json:"user_id"`
}

type SaveBoardPayload struct {
	Items []whiteboard.Item `json:"items"`
}

type BoardSavedPayload struct {
	Count int `json:"count"`
}

// ErrorPayload reports a rejected client event. Event names the event
// that failed.
type ErrorPayload struct {
	Event   string `json:"event,omitempty"`
	Message string `json:"message"`
}

// NewSocketEvent marshals payload into an envelope.
func NewSocketEvent(event, whiteboardID, senderID string, payload any) (SocketEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return SocketEvent{}, err
	}
	return SocketEvent{Event: event, WhiteboardID: whiteboardID, SenderID: senderID, Payload: raw}, nil
}
