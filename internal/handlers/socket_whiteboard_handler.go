package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"socketBoard/internal/canvas/presence"
	"socketBoard/internal/enums"
	"socketBoard/internal/errs"
	"socketBoard/internal/models"
	redisModels "socketBoard/internal/models/redis"
	socketModels "socketBoard/internal/models/socket"
	"socketBoard/internal/models/whiteboard"
	"socketBoard/internal/services"
	"socketBoard/internal/utils"
)

const shutdownTimeout = 10 * time.Second

type SocketWhiteboardHandler struct {
	ctx               context.Context
	upgrader          websocket.Upgrader
	hub               *models.SocketWhiteboardHub
	Redis             *redis.Client
	pubsub            *redis.PubSub
	whiteboardService *services.WhiteboardService
	presenceService   *services.PresenceService
}

// NewSocketWhiteboardHandler subscribes to every board channel before
// returning, so no event published afterwards is missed.
func NewSocketWhiteboardHandler(
	redis *redis.Client,
	ctx context.Context,
	whiteboardService *services.WhiteboardService,
	presenceService *services.PresenceService,
) *SocketWhiteboardHandler {
	swh := &SocketWhiteboardHandler{
		ctx:               ctx,
		Redis:             redis,
		whiteboardService: whiteboardService,
		presenceService:   presenceService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		hub: &models.SocketWhiteboardHub{
			Whiteboards: make(map[string][]*models.SocketClient),
		},
	}
	ch := swh.SubscribeToChannel(redis, redisModels.REDIS_CHANNEL_WHITEBOARD_ALL)
	go swh.HandleRedisMessages(ch)
	return swh
}

// HandleSocketWhiteboardRoute serves GET /ws/whiteboards/:id?user_id=&name=&color=.
func (swh *SocketWhiteboardHandler) HandleSocketWhiteboardRoute(ctx *gin.Context) {
	whiteboardId := utils.GetWhiteboardIdFromContext(ctx)
	if _, err := swh.whiteboardService.FindWhiteboard(whiteboardId); err != nil {
		abortWithError(ctx, err)
		return
	}
	userId := ctx.Query("user_id")
	if userId == "" {
		abortWithError(ctx, errs.ErrInvalidUserId)
		return
	}

	color := ctx.Query("color")
	if color == "" {
		color = presence.ColorFor(userId)
	}
	swh.HandleConnections(ctx, &models.SocketClient{
		ID:     uuid.NewString(),
		UserId: userId,
		Name:   ctx.Query("name"),
		Color:  color,
	}, whiteboardId)
}

func (swh *SocketWhiteboardHandler) HandleConnections(ctx *gin.Context, client *models.SocketClient, whiteboardId string) {
	// Upgrade writes its own error response on failure
	ws, err := swh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("[SocketWhiteboardHandler] upgrade: %v", err)
		return
	}
	client.Conn = ws
	defer func() {
		if err := ws.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Printf("[SocketWhiteboardHandler] close connection: %v", err)
		}
	}()

	swh.addClient(whiteboardId, client)
	defer swh.handleDisconnectedClient(whiteboardId, client)

	if _, err := swh.presenceService.Touch(swh.ctx, whiteboardId, presence.Presence{
		ID:    client.UserId,
		Name:  client.Name,
		Color: client.Color,
	}); err != nil {
		log.Printf("[SocketWhiteboardHandler] presence join %s: %v", client.UserId, err)
	}

	swh.handleIncomingMessages(client, whiteboardId)
}

func (swh *SocketWhiteboardHandler) addClient(whiteboardId string, client *models.SocketClient) {
	swh.hub.Mu.Lock()
	defer swh.hub.Mu.Unlock()
	swh.hub.Whiteboards[whiteboardId] = append(swh.hub.Whiteboards[whiteboardId], client)
	log.Printf("[SocketWhiteboardHandler] %s joined %s (%d connected)",
		client.UserId, whiteboardId, len(swh.hub.Whiteboards[whiteboardId]))
}

func (swh *SocketWhiteboardHandler) removeClient(whiteboardId string, client *models.SocketClient) bool {
	swh.hub.Mu.Lock()
	defer swh.hub.Mu.Unlock()
	clients := swh.hub.Whiteboards[whiteboardId]
	for i, c := range clients {
		if c == client {
			swh.hub.Whiteboards[whiteboardId] = append(clients[:i], clients[i+1:]...)
			if len(swh.hub.Whiteboards[whiteboardId]) == 0 {
				delete(swh.hub.Whiteboards, whiteboardId)
			}
			return true
		}
	}
	return false
}

// Clients returns how many sockets are joined to the board on this instance.
func (swh *SocketWhiteboardHandler) Clients(whiteboardId string) int {
	swh.hub.Mu.Lock()
	defer swh.hub.Mu.Unlock()
	return len(swh.hub.Whiteboards[whiteboardId])
}

func (swh *SocketWhiteboardHandler) handleDisconnectedClient(whiteboardId string, client *models.SocketClient) {
	if !swh.removeClient(whiteboardId, client) {
		return
	}
	log.Printf("[SocketWhiteboardHandler] %s left %s", client.UserId, whiteboardId)
	if !swh.userConnected(whiteboardId, client.UserId) {
		if err := swh.presenceService.Leave(swh.ctx, whiteboardId, client.UserId); err != nil {
			log.Printf("[SocketWhiteboardHandler] presence leave %s: %v", client.UserId, err)
		}
	}
	payload := socketModels.PresenceLeftPayload{UserID: client.UserId}
	if err := swh.publish(whiteboardId, client, enums.SOCKET_EVENT_PRESENCE_LEFT, payload); err != nil {
		log.Printf("[SocketWhiteboardHandler] publish presence_left: %v", err)
	}
}

func (swh *SocketWhiteboardHandler) userConnected(whiteboardId, userId string) bool {
	swh.hub.Mu.Lock()
	defer swh.hub.Mu.Unlock()
	for _, c := range swh.hub.Whiteboards[whiteboardId] {
		if c.UserId == userId {
			return true
		}
	}
	return false
}

func (swh *SocketWhiteboardHandler) handleIncomingMessages(client *models.SocketClient, whiteboardId string) {
	for {
		var event socketModels.SocketEvent
		if err := client.Conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[SocketWhiteboardHandler] read from %s: %v", client.UserId, err)
			}
			return
		}

		if err := swh.handleEvent(client, whiteboardId, event); err != nil {
			log.Printf("[SocketWhiteboardHandler] %s event from %s: %v", event.Event, client.UserId, err)
			swh.sendError(client, whiteboardId, event.Event, err)
		}
	}
}

func (swh *SocketWhiteboardHandler) handleEvent(client *models.SocketClient, whiteboardId string, event socketModels.SocketEvent) error {
	switch event.Event {
	case enums.SOCKET_EVENT_UPSERT_ITEM:
		return swh.handleUpsertItemEvent(client, whiteboardId, event.Payload)
	case enums.SOCKET_EVENT_DELETE_ITEM:
		return swh.handleDeleteItemEvent(client, whiteboardId, event.Payload)
	case enums.SOCKET_EVENT_REORDER_ITEMS:
		return swh.handleReorderItemsEvent(client, whiteboardId, event.Payload)
	case enums.SOCKET_EVENT_CURSOR_MOVED:
		return swh.handleCursorMovedEvent(client, whiteboardId, event.Payload)
	case enums.SOCKET_EVENT_SAVE_BOARD:
		return swh.handleSaveBoardEvent(client, whiteboardId, event.Payload)
	}
	return errs.ErrUnknownEvent
}

func (swh *SocketWhiteboardHandler) handleUpsertItemEvent(client *models.SocketClient, whiteboardId string, payload json.RawMessage) error {
	var item whiteboard.Item
	if err := json.Unmarshal(payload, &item); err != nil {
		return errs.ErrInvalidItem
	}
	if item.LastEditedBy == "" {
		item.LastEditedBy = client.UserId
	}
	if err := swh.whiteboardService.UpsertItem(whiteboardId, item); err != nil {
		return err
	}
	return swh.publish(whiteboardId, client, enums.SOCKET_EVENT_UPSERT_ITEM, item)
}

func (swh *SocketWhiteboardHandler) handleDeleteItemEvent(client *models.SocketClient, whiteboardId string, payload json.RawMessage) error {
	var deleted socketModels.ItemDeletedPayload
	if err := json.Unmarshal(payload, &deleted); err != nil {
		return errs.ErrInvalidRequestBody
	}
	err := swh.whiteboardService.DeleteItem(whiteboardId, deleted.ItemID)
	if errors.Is(err, errs.ErrItemNotFound) {
		// already gone, someone else won
		return nil
	}
	if err != nil {
		return err
	}
	return swh.publish(whiteboardId, client, enums.SOCKET_EVENT_DELETE_ITEM, deleted)
}

func (swh *SocketWhiteboardHandler) handleReorderItemsEvent(client *models.SocketClient, whiteboardId string, payload json.RawMessage) error {
	var reordered socketModels.ItemsReorderedPayload
	if err := json.Unmarshal(payload, &reordered); err != nil {
		return errs.ErrInvalidRequestBody
	}
	if err := swh.whiteboardService.ReorderItems(whiteboardId, reordered.ItemIDs); err != nil {
		return err
	}
	return swh.publish(whiteboardId, client, enums.SOCKET_EVENT_REORDER_ITEMS, reordered)
}

func (swh *SocketWhiteboardHandler) handleCursorMovedEvent(client *models.SocketClient, whiteboardId string, payload json.RawMessage) error {
	var moved socketModels.CursorPayload
	if err := json.Unmarshal(payload, &moved); err != nil {
		return errs.ErrInvalidRequestBody
	}
	moved.UserID = client.UserId
	if moved.Name == "" {
		moved.Name = client.Name
	}
	if moved.Color == "" {
		moved.Color = client.Color
	}
	cursor := moved.Cursor
	if _, err := swh.presenceService.Touch(swh.ctx, whiteboardId, presence.Presence{
		ID:     moved.UserID,
		Name:   moved.Name,
		Color:  moved.Color,
		Cursor: &cursor,
	}); err != nil {
		log.Printf("[SocketWhiteboardHandler] presence touch %s: %v", moved.UserID, err)
	}
	return swh.publish(whiteboardId, client, enums.SOCKET_EVENT_CURSOR_MOVED, moved)
}

func (swh *SocketWhiteboardHandler) handleSaveBoardEvent(client *models.SocketClient, whiteboardId string, payload json.RawMessage) error {
	var save socketModels.SaveBoardPayload
	if err := json.Unmarshal(payload, &save); err != nil {
		return errs.ErrInvalidRequestBody
	}
	for i := range save.Items {
		if save.Items[i].LastEditedBy == "" {
			save.Items[i].LastEditedBy = client.UserId
		}
	}
	if err := swh.whiteboardService.SaveItems(whiteboardId, save.Items); err != nil {
		return err
	}
	reply, err := socketModels.NewSocketEvent(enums.SOCKET_EVENT_BOARD_SAVED, whiteboardId, client.UserId,
		socketModels.BoardSavedPayload{Count: len(save.Items)})
	if err != nil {
		return err
	}
	return client.WriteJSON(reply)
}

func (swh *SocketWhiteboardHandler) sendError(client *models.SocketClient, whiteboardId, failed string, err error) {
	message := errs.ErrInternalServer.Error()
	if cause, ok := errors.Cause(err).(errs.Error); ok {
		message = cause.Error()
	}
	event, marshalErr := socketModels.NewSocketEvent(enums.SOCKET_EVENT_ERROR, whiteboardId, "",
		socketModels.ErrorPayload{Event: failed, Message: message})
	if marshalErr != nil {
		return
	}
	if err := client.WriteJSON(event); err != nil {
		log.Printf("[SocketWhiteboardHandler] write error event: %v", err)
	}
}

// publish relays an event to every instance serving the board. The sending
// connection is skipped on fan-out.
func (swh *SocketWhiteboardHandler) publish(whiteboardId string, sender *models.SocketClient, event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	message, err := json.Marshal(redisModels.RedisPublishedMessage{
		Event:        event,
		WhiteboardID: whiteboardId,
		SenderID:     sender.UserId,
		Origin:       sender.ID,
		Payload:      raw,
	})
	if err != nil {
		return err
	}
	return swh.PublishMessage(swh.Redis, redisModels.WhiteboardChannel(whiteboardId), message)
}

func (swh *SocketWhiteboardHandler) HandleRedisMessages(ch <-chan *redis.Message) {
	for msg := range ch {
		var redisMessage redisModels.RedisPublishedMessage
		if err := json.Unmarshal([]byte(msg.Payload), &redisMessage); err != nil {
			log.Printf("[SocketWhiteboardHandler] unmarshal redis message: %v", err)
			continue
		}
		if redisMessage.WhiteboardID == "" {
			redisMessage.WhiteboardID, _ = redisModels.WhiteboardIDFromChannel(msg.Channel)
		}
		swh.SendMessageToClients(redisMessage)
	}
}

func (swh *SocketWhiteboardHandler) SendMessageToClients(redisMessage redisModels.RedisPublishedMessage) {
	swh.hub.Mu.Lock()
	var targets []*models.SocketClient
	for _, client := range swh.hub.Whiteboards[redisMessage.WhiteboardID] {
		if client.ID != redisMessage.Origin {
			targets = append(targets, client)
		}
	}
	swh.hub.Mu.Unlock()

	event := socketModels.SocketEvent{
		Event:        redisMessage.Event,
		WhiteboardID: redisMessage.WhiteboardID,
		SenderID:     redisMessage.SenderID,
		Payload:      redisMessage.Payload,
	}
	for _, client := range targets {
		if err := client.WriteJSON(event); err != nil {
			log.Printf("[SocketWhiteboardHandler] write to %s: %v", client.UserId, err)
			// the read loop notices the closed connection and cleans up
			_ = client.Conn.Close()
		}
	}
}

func (swh *SocketWhiteboardHandler) PublishMessage(redis *redis.Client, channel string, message []byte) error {
	return redis.Publish(swh.ctx, channel, message).Err()
}

func (swh *SocketWhiteboardHandler) SubscribeToChannel(redis *redis.Client, pattern string) <-chan *redis.Message {
	swh.pubsub = redis.PSubscribe(swh.ctx, pattern)
	if _, err := swh.pubsub.Receive(swh.ctx); err != nil {
		log.Fatalf("Could not subscribe to %s: %v", pattern, err)
	}
	return swh.pubsub.Channel()
}

// Close stops the redis fan-out and drops every connection.
func (swh *SocketWhiteboardHandler) Close() {
	if swh.pubsub != nil {
		if err := swh.pubsub.Close(); err != nil {
			log.Printf("[SocketWhiteboardHandler] close pubsub: %v", err)
		}
	}
	swh.hub.Mu.Lock()
	defer swh.hub.Mu.Unlock()
	for _, clients := range swh.hub.Whiteboards {
		for _, client := range clients {
			_ = client.Conn.Close()
		}
	}
}

func (swh *SocketWhiteboardHandler) WaitForShutdown(httpServer *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(swh.ctx, shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	swh.Close()
	log.Println("Server exiting")
}
