package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"time"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
)

// In-memory repository fakes. They implement just enough semantics for
// the service tests: keyed maps, ordered slices and the same sentinel
// errors the real repositories return.

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByResetTokenHash(_ context.Context, hash string) (*models.User, error) {
	for _, u := range f.users {
		if u.ForgetPasswordToken != nil && *u.ForgetPasswordToken == hash {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrInvalidResetToken
}

func (f *fakeUserRepo) Update(_ context.Context, id string, fields map[string]any) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	for col, val := range fields {
		switch col {
		case "email":
			u.Email = val.(string)
		case "university":
			u.University = val.(string)
		case "major":
			u.Major = val.(string)
		case "phone_number":
			u.PhoneNumber = val.(string)
		case "bio":
			u.Bio = val.(string)
		case "avatar":
			u.Avatar = val.(string)
		case "password_hash":
			u.PasswordHash = val.(string)
		case "is_verified":
			u.IsVerified = val.(bool)
		case "is_online":
			u.IsOnline = val.(bool)
		case "verification_token":
			u.VerificationToken = optString(val)
		case "verification_token_expires_at":
			u.VerificationTokenExpiresAt = optTime(val)
		case "forget_password_token":
			u.ForgetPasswordToken = optString(val)
		case "forget_password_token_expires_at":
			u.ForgetPasswordTokenExpiresAt = optTime(val)
		}
	}
	u.UpdatedAt = time.Now()
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) DeleteCascade(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func optString(val any) *string {
	if val == nil {
		return nil
	}
	s := val.(string)
	return &s
}

func optTime(val any) *time.Time {
	if val == nil {
		return nil
	}
	t := val.(time.Time)
	return &t
}

type fakeBookRepo struct {
	books  map[string]*models.Book
	nextID int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[string]*models.Book{}}
}

func (f *fakeBookRepo) Create(_ context.Context, book *models.Book) error {
	f.nextID++
	book.ID = fmt.Sprintf("book-%d", f.nextID)
	book.Status = models.BookStatusActive
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	clone := *book
	f.books[book.ID] = &clone
	return nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id string) (*models.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, apperrors.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookRepo) ListAll(_ context.Context) ([]models.Book, error) {
	out := make([]models.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Book, error) {
	out := make([]models.Book, 0)
	for _, b := range f.books {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) UpdateStatus(_ context.Context, id string, status models.BookStatus) error {
	b, ok := f.books[id]
	if !ok {
		return apperrors.ErrBookNotFound
	}
	b.Status = status
	return nil
}

type participantKey struct {
	conversationID string
	userID         string
}

type fakeChatRepo struct {
	conversations map[string]*models.Conversation
	participants  map[participantKey]bool
	messages      []*models.Message
	nextID        int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		conversations: map[string]*models.Conversation{},
		participants:  map[participantKey]bool{},
	}
}

func (f *fakeChatRepo) FindPrivateBetween(_ context.Context, user1ID, user2ID string) (*models.Conversation, error) {
	for id, c := range f.conversations {
		if !c.IsGroup &&
			f.participants[participantKey{id, user1ID}] &&
			f.participants[participantKey{id, user2ID}] {
			clone := *c
			return &clone, nil
		}
	}
	return nil, apperrors.ErrConversationNotFound
}

func (f *fakeChatRepo) CreatePrivate(_ context.Context, createdBy, otherID string) (*models.Conversation, error) {
	f.nextID++
	c := &models.Conversation{
		ID:        fmt.Sprintf("conv-%d", f.nextID),
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.conversations[c.ID] = c
	f.participants[participantKey{c.ID, createdBy}] = true
	f.participants[participantKey{c.ID, otherID}] = true
	clone := *c
	return &clone, nil
}

func (f *fakeChatRepo) GetByID(_ context.Context, id string) (*models.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, apperrors.ErrConversationNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeChatRepo) ListForUser(_ context.Context, userID string) ([]models.Conversation, error) {
	out := make([]models.Conversation, 0)
	for id, c := range f.conversations {
		if f.participants[participantKey{id, userID}] {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (f *fakeChatRepo) IsParticipant(_ context.Context, conversationID, userID string) (bool, error) {
	return f.participants[participantKey{conversationID, userID}], nil
}

func (f *fakeChatRepo) Participants(_ context.Context, conversationID string) ([]models.ChatParticipant, error) {
	out := make([]models.ChatParticipant, 0)
	for key := range f.participants {
		if key.conversationID == conversationID {
			out = append(out, models.ChatParticipant{ID: key.userID})
		}
	}
	return out, nil
}

func (f *fakeChatRepo) CreateMessage(_ context.Context, msg *models.Message) error {
	f.nextID++
	msg.ID = fmt.Sprintf("msg-%d", f.nextID)
	msg.Status = models.MessageStatusSent
	msg.CreatedAt = time.Now()
	msg.UpdatedAt = msg.CreatedAt
	clone := *msg
	f.messages = append(f.messages, &clone)
	return nil
}

func (f *fakeChatRepo) GetMessage(_ context.Context, id string) (*models.Message, error) {
	for _, m := range f.messages {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeChatRepo) ListMessages(_ context.Context, conversationID string) ([]models.Message, error) {
	out := make([]models.Message, 0)
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) UnreadCount(_ context.Context, conversationID, userID string, statuses []models.MessageStatus) (int, error) {
	count := 0
	for _, m := range f.messages {
		if m.ConversationID != conversationID || m.SenderID == userID {
			continue
		}
		for _, s := range statuses {
			if m.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}

func (f *fakeChatRepo) SetLastMessage(_ context.Context, conversationID, messageID string) error {
	c, ok := f.conversations[conversationID]
	if !ok {
		return apperrors.ErrConversationNotFound
	}
	c.LastMessageID = &messageID
	c.UpdatedAt = time.Now()
	return nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	nextID        int
	failCreate    bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if f.failCreate {
		return apperrors.ErrDatabaseError
	}
	f.nextID++
	n.ID = fmt.Sprintf("notif-%d", f.nextID)
	n.CreatedAt = time.Now()
	clone := *n
	f.notifications = append(f.notifications, &clone)
	return nil
}

func (f *fakeNotificationRepo) ListForUser(_ context.Context, userID string) ([]models.Notification, error) {
	out := make([]models.Notification, 0)
	for _, n := range f.notifications {
		if n.ForAll || (n.UserID != nil && *n.UserID == userID) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range f.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range f.notifications {
		if n.UserID != nil && *n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CreateAnnouncementIfAbsent(_ context.Context, n *models.Notification) error {
	for _, existing := range f.notifications {
		if existing.ForAll && existing.Title == n.Title {
			return nil
		}
	}
	n.ForAll = true
	return f.Create(context.Background(), n)
}

type fakeMailer struct {
	verifications []string
	resetURLs     []string
	changed       []string
}

func (f *fakeMailer) SendVerificationCode(to, code string) error {
	f.verifications = append(f.verifications, code)
	return nil
}

func (f *fakeMailer) SendPasswordReset(to, resetURL string) error {
	f.resetURLs = append(f.resetURLs, resetURL)
	return nil
}

func (f *fakeMailer) SendPasswordChanged(to string) error {
	f.changed = append(f.changed, to)
	return nil
}

type fakeStorage struct {
	saved    []string
	deleted  []string
	nextID   int
	failWith error
}

func (f *fakeStorage) Save(file *multipart.FileHeader) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	f.nextID++
	url := fmt.Sprintf("/uploads/fake-%d.jpg", f.nextID)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeStorage) Delete(url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}
