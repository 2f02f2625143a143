package models

import (
	"encoding/json"
	"strings"
)

const (
	REDIS_CHANNEL_WHITEBOARD_PREFIX = "whiteboard:"
	REDIS_CHANNEL_WHITEBOARD_ALL    = REDIS_CHANNEL_WHITEBOARD_PREFIX + "*"
	REDIS_KEY_PRESENCE_PREFIX       = "presence:whiteboard:"
)

// RedisPublishedMessage is a board event relayed between server instances.
// Origin is the publishing connection, skipped on fan-out so senders do
// not receive their own echo.
type RedisPublishedMessage struct {
	Event        string          `json:"event"`
	WhiteboardID string          `json:"whiteboard_id"`
	SenderID     string          `json:"sender_id"`
	Origin       string          `json:"origin,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

func WhiteboardChannel(whiteboardID string) string {
	return REDIS_CHANNEL_WHITEBOARD_PREFIX + whiteboardID
}

// WhiteboardIDFromChannel is the inverse of WhiteboardChannel.
func WhiteboardIDFromChannel(channel string) (string, bool) {
	id, ok := strings.CutPrefix(channel, REDIS_CHANNEL_WHITEBOARD_PREFIX)
	return id, ok && id != ""
}

func PresenceKey(whiteboardID, userID string) string {
	return REDIS_KEY_PRESENCE_PREFIX + whiteboardID + ":" + userID
}

func PresencePattern(whiteboardID string) string {
	return REDIS_KEY_PRESENCE_PREFIX + whiteboardID + ":*"
}
