package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hassy/readcycle/internal/app/models/dto"
	"github.com/hassy/readcycle/internal/app/services"
	"github.com/hassy/readcycle/internal/middleware"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
)

// NotificationController serves the notification endpoints.
type NotificationController struct {
	notifications *services.NotificationService
}

// NewNotificationController creates a notification controller.
func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// AllUserNotifications handles
// GET /notification/all-user-notification/:user_id.
func (nc *NotificationController) AllUserNotifications(c *gin.Context) {
	userID := c.Param("user_id")
	if userID != middleware.UserID(c) {
		middleware.HandleAPIError(c, apperrors.ErrForbidden)
		return
	}

	notifications, err := nc.notifications.ListForUser(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications})
}

// MarkNotificationRead handles POST /notification/mark-notification-read.
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	var req dto.MarkNotificationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := nc.notifications.MarkRead(c.Request.Context(), req.NotificationID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
}

// MarkAllNotificationsRead handles
// POST /notification/mark-all-notification-read.
func (nc *NotificationController) MarkAllNotificationsRead(c *gin.Context) {
	err := nc.notifications.MarkAllRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All notifications marked as read"})
}
