package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hassy/readcycle/internal/app/services"
	"github.com/hassy/readcycle/internal/pkg/logger"
)

const handleTimeout = 10 * time.Second

// Gateway translates socket frames into chat service calls and fans
// the results back out through the hub.
type Gateway struct {
	hub  *Hub
	chat *services.ChatService
}

// NewGateway creates a gateway on top of the hub and chat service.
func NewGateway(hub *Hub, chat *services.ChatService) *Gateway {
	return &Gateway{hub: hub, chat: chat}
}

// Hub returns the underlying hub.
func (g *Gateway) Hub() *Hub {
	return g.hub
}

// HandleFrame dispatches one client frame. Unknown events are dropped.
func (g *Gateway) HandleFrame(client *Client, frame Frame) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	switch frame.Event {
	case EventJoinConversation:
		g.handleJoin(ctx, client, frame.Data)
	case EventSendMessage:
		g.handleSendMessage(ctx, client, frame.Data)
	case EventTypingStart:
		g.handleTyping(client, frame.Data, true)
	case EventTypingStop:
		g.handleTyping(client, frame.Data, false)
	default:
		logger.Debug().Str("event", frame.Event).Msg("Dropping unknown event")
	}
}

// handleJoin puts the client in a conversation room, but only if the
// user actually belongs to the conversation.
func (g *Gateway) handleJoin(ctx context.Context, client *Client, data json.RawMessage) {
	var payload JoinPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		return
	}

	member, err := g.chat.IsParticipant(ctx, payload.ConversationID, client.UserID())
	if err != nil {
		logger.Error().Err(err).Str("conversation_id", payload.ConversationID).
			Msg("Failed to check room membership")
		return
	}
	if !member {
		logger.Warn().
			Str("user_id", client.UserID()).
			Str("conversation_id", payload.ConversationID).
			Msg("Rejected join to foreign conversation")
		return
	}
	g.hub.Join(client, payload.ConversationID)
}

// handleSendMessage persists the message first and only then tells the
// room. On failure the sender alone hears about it.
func (g *Gateway) handleSendMessage(ctx context.Context, client *Client, data json.RawMessage) {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.Send(EventMessageError, ErrorPayload{Error: "malformed send_message payload"})
		return
	}

	// The sender identity comes from the session, not the payload.
	msg, err := g.chat.SendMessage(ctx, client.UserID(), payload.ReceiverID,
		payload.ConversationID, payload.Body)
	if err != nil {
		client.Send(EventMessageError, ErrorPayload{TempID: payload.TempID, Error: err.Error()})
		return
	}

	// A first message may have created the thread; make sure the
	// sender is in the room before fanning out.
	g.hub.Join(client, msg.ConversationID)
	g.hub.Broadcast(msg.ConversationID, EventMessageReceived, msg, nil)
	client.Send(EventMessageDelivered, DeliveredPayload{
		TempID:    payload.TempID,
		MessageID: msg.ID,
		Status:    "delivered",
	})
}

func (g *Gateway) handleTyping(client *Client, data json.RawMessage, isTyping bool) {
	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		return
	}

	event := EventUserStopTyping
	if isTyping {
		event = EventUserTyping
	}
	g.hub.Broadcast(payload.ConversationID, event, TypingBroadcast{
		ConversationID: payload.ConversationID,
		UserID:         client.UserID(),
		IsTyping:       isTyping,
	}, client)
}
