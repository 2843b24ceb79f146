// Package repositories implements PostgreSQL persistence for the
// application models.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hassy/readcycle/internal/app/models"
)

// DB is the subset of pgxpool.Pool the repositories use. Tests swap in
// a pgxmock pool through the same interface.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// IUserRepository persists accounts.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.User, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*models.User, error)
	DeleteCascade(ctx context.Context, id string) error
}

// IBookRepository persists listings.
type IBookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id string) (*models.Book, error)
	ListAll(ctx context.Context) ([]models.Book, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Book, error)
	UpdateStatus(ctx context.Context, id string, status models.BookStatus) error
}

// IChatRepository persists conversations and messages.
type IChatRepository interface {
	FindPrivateBetween(ctx context.Context, user1ID, user2ID string) (*models.Conversation, error)
	CreatePrivate(ctx context.Context, createdBy, otherID string) (*models.Conversation, error)
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	Participants(ctx context.Context, conversationID string) ([]models.ChatParticipant, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessage(ctx context.Context, id string) (*models.Message, error)
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	UnreadCount(ctx context.Context, conversationID, userID string, statuses []models.MessageStatus) (int, error)
	SetLastMessage(ctx context.Context, conversationID, messageID string) error
}

// INotificationRepository persists notifications.
type INotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	CreateAnnouncementIfAbsent(ctx context.Context, n *models.Notification) error
}

// Repositories bundles every repository for dependency wiring.
type Repositories struct {
	User         IUserRepository
	Book         IBookRepository
	Chat         IChatRepository
	Notification INotificationRepository
}

// NewRepositories creates the repository set backed by the pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(pool),
		Book:         NewBookRepository(pool),
		Chat:         NewChatRepository(pool),
		Notification: NewNotificationRepository(pool),
	}
}
