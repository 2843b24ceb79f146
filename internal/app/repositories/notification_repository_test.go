package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassy/readcycle/internal/pkg/apperrors"
)

func TestNotificationRepositoryListForUserIncludesAnnouncements(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	userID := "u-1"
	repo := NewNotificationRepository(mock)
	mock.ExpectQuery(`FROM notifications\s+WHERE user_id = \$1 OR for_all = TRUE`).
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"notification_id", "user_id", "type", "title", "priority",
			"action_performed", "body", "is_read", "for_all", "created_at", "updated_at",
		}).
			AddRow("n-2", &userID, "message", "New message", "normal",
				nil, "You have a new message", false, false, now, now).
			AddRow("n-1", nil, "announcement", "Welcome to ReadCycle", "normal",
				nil, "Happy trading!", false, true, now.Add(-time.Hour), now.Add(-time.Hour)))

	notifications, err := repo.ListForUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.False(t, notifications[0].ForAll)
	assert.True(t, notifications[1].ForAll)
	assert.Nil(t, notifications[1].UserID)
}

func TestNotificationRepositoryMarkReadMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewNotificationRepository(mock)
	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE`).
		WithArgs("n-404").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.MarkRead(context.Background(), "n-404")
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}
