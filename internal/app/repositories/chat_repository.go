package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
	"github.com/hassy/readcycle/internal/pkg/dberrors"
)

const conversationColumns = `c.conversation_id, c.is_group, c.group_name, c.created_by,
	c.last_message_id, c.created_at, c.updated_at`

const messageColumns = `m.message_id, m.conversation_id, m.sender_id, m.body,
	m.status, m.created_at, m.updated_at`

// ChatRepository is the PostgreSQL implementation of IChatRepository.
type ChatRepository struct {
	db DB
}

// NewChatRepository creates a chat repository.
func NewChatRepository(db DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func scanConversation(row pgx.Row) (*models.Conversation, error) {
	var c models.Conversation
	err := row.Scan(&c.ID, &c.IsGroup, &c.GroupName, &c.CreatedBy,
		&c.LastMessageID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanMessage(row pgx.Row, withSender bool) (*models.Message, error) {
	var m models.Message
	dest := []any{&m.ID, &m.ConversationID, &m.SenderID, &m.Body,
		&m.Status, &m.CreatedAt, &m.UpdatedAt}
	if withSender {
		dest = append(dest, &m.SenderName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &m, nil
}

// FindPrivateBetween returns the private thread both users belong to,
// regardless of pair order.
func (r *ChatRepository) FindPrivateBetween(ctx context.Context, user1ID, user2ID string) (*models.Conversation, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM conversations c
		JOIN conversation_participants p1
			ON p1.conversation_id = c.conversation_id AND p1.user_id = $1
		JOIN conversation_participants p2
			ON p2.conversation_id = c.conversation_id AND p2.user_id = $2
		WHERE c.is_group = FALSE
		LIMIT 1`, conversationColumns), user1ID, user2ID)
	c, err := scanConversation(row)
	if err != nil {
		return nil, dberrors.Map(err, apperrors.ErrConversationNotFound)
	}
	return c, nil
}

// CreatePrivate inserts a private conversation and both participant
// rows in one transaction.
func (r *ChatRepository) CreatePrivate(ctx context.Context, createdBy, otherID string) (*models.Conversation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create conversation: %w", err)
	}
	defer tx.Rollback(ctx)

	var c models.Conversation
	c.CreatedBy = createdBy
	err = tx.QueryRow(ctx, `
		INSERT INTO conversations (is_group, created_by)
		VALUES (FALSE, $1)
		RETURNING conversation_id, created_at, updated_at`,
		createdBy,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}

	for _, userID := range []string{createdBy, otherID} {
		if _, err := tx.Exec(ctx, `
			INSERT INTO conversation_participants (conversation_id, user_id)
			VALUES ($1, $2)`, c.ID, userID); err != nil {
			return nil, fmt.Errorf("insert participant: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create conversation: %w", err)
	}
	return &c, nil
}

// GetByID fetches a conversation by primary key.
func (r *ChatRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM conversations c WHERE c.conversation_id = $1`,
		conversationColumns), id)
	c, err := scanConversation(row)
	if err != nil {
		return nil, dberrors.Map(err, apperrors.ErrConversationNotFound)
	}
	return c, nil
}

// ListForUser returns the user's conversations, most recently active
// first.
func (r *ChatRepository) ListForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM conversations c
		JOIN conversation_participants p
			ON p.conversation_id = c.conversation_id AND p.user_id = $1
		ORDER BY c.updated_at DESC`, conversationColumns), userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	conversations := make([]models.Conversation, 0)
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, *c)
	}
	return conversations, rows.Err()
}

// IsParticipant reports whether the user belongs to the conversation.
func (r *ChatRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM conversation_participants
			WHERE conversation_id = $1 AND user_id = $2
		)`, conversationID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check participant: %w", err)
	}
	return exists, nil
}

// Participants returns the members of a conversation with their chat
// profile fields.
func (r *ChatRepository) Participants(ctx context.Context, conversationID string) ([]models.ChatParticipant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.user_id, u.full_name, COALESCE(u.avatar, ''), u.is_online
		FROM conversation_participants p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.conversation_id = $1
		ORDER BY u.full_name`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	participants := make([]models.ChatParticipant, 0, 2)
	for rows.Next() {
		var p models.ChatParticipant
		if err := rows.Scan(&p.ID, &p.FullName, &p.Avatar, &p.IsOnline); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// CreateMessage inserts a message with status 'sent' and fills the
// generated id and timestamps.
func (r *ChatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING message_id, status, created_at, updated_at`,
		msg.ConversationID, msg.SenderID, msg.Body,
	).Scan(&msg.ID, &msg.Status, &msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// GetMessage fetches a message with its sender name.
func (r *ChatRepository) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s, u.full_name
		FROM messages m
		JOIN users u ON u.user_id = m.sender_id
		WHERE m.message_id = $1`, messageColumns), id)
	m, err := scanMessage(row, true)
	if err != nil {
		return nil, dberrors.Map(err, apperrors.ErrResourceNotFound)
	}
	return m, nil
}

// ListMessages returns the full history of a conversation in ascending
// order with sender names.
func (r *ChatRepository) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s, u.full_name
		FROM messages m
		JOIN users u ON u.user_id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC`, messageColumns), conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

// UnreadCount counts messages from other senders whose status is in
// the given set.
func (r *ChatRepository) UnreadCount(ctx context.Context, conversationID, userID string, statuses []models.MessageStatus) (int, error) {
	set := make([]string, len(statuses))
	for i, s := range statuses {
		set[i] = string(s)
	}
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages
		WHERE conversation_id = $1 AND sender_id <> $2 AND status = ANY($3)`,
		conversationID, userID, set).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

// SetLastMessage bumps the conversation's last message pointer and
// activity timestamp.
func (r *ChatRepository) SetLastMessage(ctx context.Context, conversationID, messageID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE conversations SET last_message_id = $1, updated_at = now()
		WHERE conversation_id = $2`, messageID, conversationID)
	if err != nil {
		return fmt.Errorf("set last message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConversationNotFound
	}
	return nil
}
