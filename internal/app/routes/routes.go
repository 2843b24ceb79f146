// Package routes wires the HTTP and websocket endpoints.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hassy/readcycle/internal/app/controllers"
	"github.com/hassy/readcycle/internal/config"
	"github.com/hassy/readcycle/internal/middleware"
	"github.com/hassy/readcycle/internal/pkg/auth"
	"github.com/hassy/readcycle/internal/pkg/websocket"
)

// Controllers bundles the handlers the router needs.
type Controllers struct {
	Auth         *controllers.AuthController
	Book         *controllers.BookController
	Chat         *controllers.ChatController
	Notification *controllers.NotificationController
	Socket       *websocket.Handler
}

// Register attaches every endpoint to the engine.
func Register(r *gin.Engine, ctrl Controllers, sessions *auth.SessionManager, cfg *config.Config) {
	r.Static(cfg.Storage.BaseURL, cfg.Storage.UploadDir)

	session := middleware.RequireSession(sessions, cfg.Session.CookieName)
	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", ctrl.Auth.Register)
		authGroup.POST("/verify-account", ctrl.Auth.VerifyAccount)
		authGroup.POST("/resend-otp", ctrl.Auth.ResendOTP)
		authGroup.POST("/login", ctrl.Auth.Login)
		authGroup.POST("/request-password-change", ctrl.Auth.RequestPasswordChange)
		authGroup.POST("/change-password-with-token", ctrl.Auth.ChangePasswordWithToken)

		authGroup.GET("/check-auth", session, ctrl.Auth.CheckAuth)
		authGroup.POST("/update-user", session, ctrl.Auth.UpdateUser)
		authGroup.POST("/change-password", session, ctrl.Auth.ChangePassword)
		authGroup.POST("/upload-profile-picture", session, ctrl.Auth.UploadProfilePicture)
		authGroup.GET("/logout", session, ctrl.Auth.Logout)
		authGroup.POST("/delete-account", session, ctrl.Auth.DeleteAccount)
	}

	books := api.Group("/books", session)
	{
		books.POST("/create-book", ctrl.Book.CreateBook)
		books.GET("/fetch-books", ctrl.Book.FetchBooks)
		books.GET("/fetch-user-books/:id", ctrl.Book.FetchUserBooks)
		books.POST("/update-book", ctrl.Book.UpdateBook)
	}

	chats := api.Group("/chats", session)
	{
		chats.POST("/start", ctrl.Chat.Start)
		chats.GET("/conversationList/:user_id", ctrl.Chat.ConversationList)
		chats.GET("/conversations/messages/private/:conversation_id", ctrl.Chat.ConversationMessages)
		chats.GET("/ws", ctrl.Socket.Serve)
	}

	notifications := api.Group("/notification", session)
	{
		notifications.GET("/all-user-notification/:user_id", ctrl.Notification.AllUserNotifications)
		notifications.POST("/mark-notification-read", ctrl.Notification.MarkNotificationRead)
		notifications.POST("/mark-all-notification-read", ctrl.Notification.MarkAllNotificationsRead)
	}
}
