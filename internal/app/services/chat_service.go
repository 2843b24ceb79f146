package services

import (
	"context"
	"errors"
	"strings"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/app/repositories"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
)

// ChatService implements conversations and messaging. The realtime
// gateway and the REST endpoints both sit on top of it.
type ChatService struct {
	chats    repositories.IChatRepository
	users    repositories.IUserRepository
	notifier *NotificationService
}

// NewChatService creates a chat service.
func NewChatService(chats repositories.IChatRepository, users repositories.IUserRepository, notifier *NotificationService) *ChatService {
	return &ChatService{chats: chats, users: users, notifier: notifier}
}

// StartConversation returns the private thread between two users,
// creating it when none exists. Repeat calls return the same thread.
func (s *ChatService) StartConversation(ctx context.Context, user1ID, user2ID string) (*models.Conversation, error) {
	if user1ID == user2ID {
		return nil, apperrors.ErrSelfConversation
	}
	for _, id := range []string{user1ID, user2ID} {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	conv, err := s.chats.FindPrivateBetween(ctx, user1ID, user2ID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, apperrors.ErrConversationNotFound) {
		return nil, err
	}
	// Lookup-then-create: two racing starts can both miss and create
	// twin threads. Accepted, matching the single-writer assumption of
	// the web client.
	return s.chats.CreatePrivate(ctx, user1ID, user2ID)
}

// ConversationList returns the user's threads ordered by most recent
// activity, each with participants, last message preview and the count
// of delivered-but-unseen messages.
func (s *ChatService) ConversationList(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	conversations, err := s.chats.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		summary := models.ConversationSummary{
			ID:        conv.ID,
			IsGroup:   conv.IsGroup,
			UpdatedAt: conv.UpdatedAt,
		}

		summary.Participants, err = s.chats.Participants(ctx, conv.ID)
		if err != nil {
			return nil, err
		}

		if conv.LastMessageID != nil {
			last, err := s.chats.GetMessage(ctx, *conv.LastMessageID)
			if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
				return nil, err
			}
			summary.LastMessage = last
		}

		summary.UnreadCount, err = s.chats.UnreadCount(ctx, conv.ID, userID,
			[]models.MessageStatus{models.MessageStatusDelivered})
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ConversationMessages returns the participants and full ascending
// history of one thread plus the caller's unread count.
func (s *ChatService) ConversationMessages(ctx context.Context, conversationID, requesterID string) ([]models.ChatParticipant, []models.Message, int, error) {
	if _, err := s.chats.GetByID(ctx, conversationID); err != nil {
		return nil, nil, 0, err
	}
	member, err := s.chats.IsParticipant(ctx, conversationID, requesterID)
	if err != nil {
		return nil, nil, 0, err
	}
	if !member {
		return nil, nil, 0, apperrors.ErrNotParticipant
	}

	participants, err := s.chats.Participants(ctx, conversationID)
	if err != nil {
		return nil, nil, 0, err
	}
	messages, err := s.chats.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, nil, 0, err
	}
	unread, err := s.chats.UnreadCount(ctx, conversationID, requesterID,
		[]models.MessageStatus{models.MessageStatusSent, models.MessageStatusDelivered})
	if err != nil {
		return nil, nil, 0, err
	}
	return participants, messages, unread, nil
}

// SendMessage persists a chat message. When conversationID is empty
// the private thread with the receiver is found or created first. The
// message is stored before anyone hears about it; broadcasting is the
// gateway's job.
func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID, conversationID, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.ErrEmptyMessage
	}
	if senderID == "" || receiverID == "" {
		return nil, apperrors.ErrValidationFailed
	}

	if conversationID == "" {
		conv, err := s.StartConversation(ctx, senderID, receiverID)
		if err != nil {
			return nil, err
		}
		conversationID = conv.ID
	} else {
		member, err := s.chats.IsParticipant(ctx, conversationID, senderID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperrors.ErrNotParticipant
		}
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.chats.SetLastMessage(ctx, conversationID, msg.ID); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, receiverID, models.NotificationTypeMessage,
		"New message", "You have a new message.", models.PriorityNormal, "send_message")
	return msg, nil
}

// IsParticipant reports whether the user belongs to the conversation.
// The realtime gateway uses it to gate room joins.
func (s *ChatService) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	return s.chats.IsParticipant(ctx, conversationID, userID)
}
