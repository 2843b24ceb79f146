package models

import "time"

// Conversation is a chat thread. Only private two-party threads are
// created today; the is_group columns keep the schema ready for rooms.
type Conversation struct {
	ID            string    `json:"conversation_id"`
	IsGroup       bool      `json:"is_group"`
	GroupName     *string   `json:"group_name,omitempty"`
	CreatedBy     string    `json:"created_by"`
	LastMessageID *string   `json:"last_message_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ChatParticipant is the chat-facing view of a user.
type ChatParticipant struct {
	ID       string `json:"user_id"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar,omitempty"`
	IsOnline bool   `json:"is_online"`
}

// ConversationSummary is the list-view projection: participants, the
// last message preview and the caller's unread count.
type ConversationSummary struct {
	ID           string            `json:"conversation_id"`
	IsGroup      bool              `json:"is_group"`
	Participants []ChatParticipant `json:"participants"`
	LastMessage  *Message          `json:"last_message,omitempty"`
	UnreadCount  int               `json:"unread_count"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
