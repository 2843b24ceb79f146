package dto

// MarkNotificationReadRequest marks a single notification as read.
type MarkNotificationReadRequest struct {
	NotificationID string `json:"notification_id" binding:"required"`
}
