package models

import "time"

// Notification is an in-app notification row. ForAll rows are
// announcements shown to every account; UserID is nil for those.
type Notification struct {
	ID              string               `json:"notification_id"`
	UserID          *string              `json:"user_id,omitempty"`
	Type            string               `json:"type"`
	Title           string               `json:"title"`
	Priority        NotificationPriority `json:"priority"`
	ActionPerformed string               `json:"action_performed,omitempty"`
	Body            string               `json:"body"`
	IsRead          bool                 `json:"is_read"`
	ForAll          bool                 `json:"for_all"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// Notification types used by the auth, marketplace and chat flows.
const (
	NotificationTypeWelcome      = "welcome"
	NotificationTypeAccount      = "account"
	NotificationTypeSecurity     = "security"
	NotificationTypeBook         = "book"
	NotificationTypeMessage      = "message"
	NotificationTypeAnnouncement = "announcement"
)
