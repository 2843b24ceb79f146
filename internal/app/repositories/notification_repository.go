package repositories

import (
	"context"
	"fmt"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
)

const notificationColumns = `notification_id, user_id, type, title, priority,
	action_performed, body, is_read, for_all, created_at, updated_at`

// NotificationRepository is the PostgreSQL implementation of
// INotificationRepository.
type NotificationRepository struct {
	db DB
}

// NewNotificationRepository creates a notification repository.
func NewNotificationRepository(db DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification and fills the generated id.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, type, title, priority, action_performed,
			body, for_all)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING notification_id, created_at, updated_at`,
		n.UserID, n.Type, n.Title, n.Priority, nullable(n.ActionPerformed),
		n.Body, n.ForAll,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListForUser returns the user's notifications together with for_all
// announcements, newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM notifications
		WHERE user_id = $1 OR for_all = TRUE
		ORDER BY created_at DESC`, notificationColumns), userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		var action *string
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Priority,
			&action, &n.Body, &n.IsRead, &n.ForAll, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if action != nil {
			n.ActionPerformed = *action
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead marks one notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, updated_at = now()
		WHERE notification_id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every notification of the user as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, updated_at = now()
		WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// CreateAnnouncementIfAbsent inserts a for_all announcement unless one
// with the same title already exists. Used by the startup seed.
func (r *NotificationRepository) CreateAnnouncementIfAbsent(ctx context.Context, n *models.Notification) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (type, title, priority, body, for_all)
		SELECT $1, $2, $3, $4, TRUE
		WHERE NOT EXISTS (
			SELECT 1 FROM notifications WHERE for_all = TRUE AND title = $2
		)`, n.Type, n.Title, n.Priority, n.Body)
	if err != nil {
		return fmt.Errorf("seed announcement: %w", err)
	}
	return nil
}
