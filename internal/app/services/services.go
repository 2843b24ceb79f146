package services

import (
	"github.com/hassy/readcycle/internal/app/repositories"
	"github.com/hassy/readcycle/internal/pkg/auth"
	"github.com/hassy/readcycle/internal/pkg/email"
	"github.com/hassy/readcycle/internal/pkg/filestorage"
)

// Services bundles every service for dependency wiring.
type Services struct {
	Auth         *AuthService
	Book         *BookService
	Chat         *ChatService
	Notification *NotificationService
}

// NewServices wires the service layer on top of the repositories.
func NewServices(
	repos *repositories.Repositories,
	mailer email.Sender,
	sessions *auth.SessionManager,
	storage filestorage.Storage,
	clientOrigin string,
) *Services {
	notifier := NewNotificationService(repos.Notification)
	return &Services{
		Auth:         NewAuthService(repos.User, notifier, mailer, sessions, storage, clientOrigin),
		Book:         NewBookService(repos.Book, notifier, storage),
		Chat:         NewChatService(repos.Chat, repos.User, notifier),
		Notification: notifier,
	}
}
