package models

import "time"

// Message is a single chat message inside a conversation.
type Message struct {
	ID             string        `json:"message_id"`
	ConversationID string        `json:"conversation_id"`
	SenderID       string        `json:"sender_id"`
	Body           string        `json:"body"`
	Status         MessageStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// SenderName is populated on reads that join the users table.
	SenderName string `json:"sender_name,omitempty"`
}
