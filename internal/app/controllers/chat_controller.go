package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hassy/readcycle/internal/app/models/dto"
	"github.com/hassy/readcycle/internal/app/services"
	"github.com/hassy/readcycle/internal/middleware"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
)

// ChatController serves the conversation REST endpoints. The realtime
// traffic goes through the websocket gateway instead.
type ChatController struct {
	chat *services.ChatService
}

// NewChatController creates a chat controller.
func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{chat: chat}
}

// Start handles POST /chats/start. The caller must be one of the two
// users in the pair.
func (cc *ChatController) Start(c *gin.Context) {
	var req dto.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	callerID := middleware.UserID(c)
	if req.User1ID != callerID && req.User2ID != callerID {
		middleware.HandleAPIError(c, apperrors.ErrForbidden)
		return
	}

	conv, err := cc.chat.StartConversation(c.Request.Context(), req.User1ID, req.User2ID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "conversation": conv})
}

// ConversationList handles GET /chats/conversationList/:user_id.
func (cc *ChatController) ConversationList(c *gin.Context) {
	userID := c.Param("user_id")
	if userID != middleware.UserID(c) {
		middleware.HandleAPIError(c, apperrors.ErrForbidden)
		return
	}

	summaries, err := cc.chat.ConversationList(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"conversations": summaries,
		"pagination":    dto.Pagination{HasMore: false},
	})
}

// ConversationMessages handles
// GET /chats/conversations/messages/private/:conversation_id.
func (cc *ChatController) ConversationMessages(c *gin.Context) {
	participants, messages, unread, err := cc.chat.ConversationMessages(
		c.Request.Context(), c.Param("conversation_id"), middleware.UserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"participants": participants,
		"messages":     messages,
		"unread_count": unread,
	})
}
