// Package services implements the application's business logic on top
// of the repositories.
package services

import (
	"context"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/app/repositories"
	"github.com/hassy/readcycle/internal/pkg/logger"
)

// NotificationService creates and serves in-app notifications.
type NotificationService struct {
	repo repositories.INotificationRepository
}

// NewNotificationService creates a notification service.
func NewNotificationService(repo repositories.INotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify records a notification for a user. Delivery is best-effort:
// failures are logged and never surface to the calling flow, so a
// notification hiccup cannot break a signup or a chat message.
func (s *NotificationService) Notify(ctx context.Context, userID, notifType, title, body string, priority models.NotificationPriority, action string) {
	n := &models.Notification{
		UserID:          &userID,
		Type:            notifType,
		Title:           title,
		Body:            body,
		Priority:        priority,
		ActionPerformed: action,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		logger.Warn().Err(err).
			Str("user_id", userID).
			Str("type", notifType).
			Msg("Failed to create notification")
	}
}

// ListForUser returns the user's notifications plus global
// announcements, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.ListForUser(ctx, userID)
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead marks every notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
