// Package websocket implements the realtime chat gateway: a hub of
// conversation rooms, one client per socket, JSON event frames.
package websocket

import "encoding/json"

// Client-to-server events.
const (
	EventJoinConversation = "join_conversation"
	EventSendMessage      = "send_message"
	EventTypingStart      = "typing_start"
	EventTypingStop       = "typing_stop"
)

// Server-to-client events.
const (
	EventMessageReceived  = "message_received"
	EventMessageDelivered = "message_delivered"
	EventMessageError     = "message_error"
	EventUserTyping       = "user_typing"
	EventUserStopTyping   = "user_stop_typing"
)

// Frame is the wire envelope for every event in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EncodeFrame marshals an outgoing frame.
func EncodeFrame(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: raw})
}

// JoinPayload asks to join a conversation room.
type JoinPayload struct {
	ConversationID string `json:"conversation_id"`
}

// SendMessagePayload carries an outgoing chat message. TempID is the
// client-side placeholder id echoed back in the delivery receipt.
type SendMessagePayload struct {
	SenderID       string `json:"sender_id"`
	ReceiverID     string `json:"receiver_id"`
	ConversationID string `json:"conversation_id,omitempty"`
	Body           string `json:"body"`
	TempID         string `json:"tempId"`
}

// TypingPayload signals typing activity in a conversation.
type TypingPayload struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
}

// DeliveredPayload is the sender-only delivery receipt.
type DeliveredPayload struct {
	TempID    string `json:"tempId"`
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ErrorPayload is the sender-only failure notice.
type ErrorPayload struct {
	TempID string `json:"tempId"`
	Error  string `json:"error"`
}

// TypingBroadcast is fanned out to the room minus the typist.
type TypingBroadcast struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
	IsTyping       bool   `json:"isTyping"`
}
