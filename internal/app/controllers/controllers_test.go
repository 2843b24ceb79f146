package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/app/services"
	"github.com/hassy/readcycle/internal/middleware"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
	"github.com/hassy/readcycle/internal/pkg/auth"
)

// Minimal in-memory doubles, just enough to drive the handlers end to
// end through a real gin engine.

type memBookRepo struct {
	books map[string]*models.Book
	next  int
}

func (m *memBookRepo) Create(_ context.Context, b *models.Book) error {
	m.next++
	b.ID = fmt.Sprintf("b-%d", m.next)
	b.Status = models.BookStatusActive
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	m.books[b.ID] = &clone
	return nil
}

func (m *memBookRepo) GetByID(_ context.Context, id string) (*models.Book, error) {
	b, ok := m.books[id]
	if !ok {
		return nil, apperrors.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (m *memBookRepo) ListAll(_ context.Context) ([]models.Book, error) {
	out := make([]models.Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memBookRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Book, error) {
	out := make([]models.Book, 0)
	for _, b := range m.books {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookRepo) UpdateStatus(_ context.Context, id string, status models.BookStatus) error {
	b, ok := m.books[id]
	if !ok {
		return apperrors.ErrBookNotFound
	}
	b.Status = status
	return nil
}

type memNotificationRepo struct{}

func (memNotificationRepo) Create(context.Context, *models.Notification) error { return nil }
func (memNotificationRepo) ListForUser(context.Context, string) ([]models.Notification, error) {
	return nil, nil
}
func (memNotificationRepo) MarkRead(context.Context, string) error    { return nil }
func (memNotificationRepo) MarkAllRead(context.Context, string) error { return nil }
func (memNotificationRepo) CreateAnnouncementIfAbsent(context.Context, *models.Notification) error {
	return nil
}

type memStorage struct{ next int }

func (m *memStorage) Save(*multipart.FileHeader) (string, error) {
	m.next++
	return fmt.Sprintf("/uploads/test-%d.jpg", m.next), nil
}
func (m *memStorage) Delete(string) error { return nil }

const testCookie = "readCycle_userSession"

type bookTestEnv struct {
	router   *gin.Engine
	sessions *auth.SessionManager
	repo     *memBookRepo
}

func newBookTestEnv() *bookTestEnv {
	gin.SetMode(gin.TestMode)
	repo := &memBookRepo{books: map[string]*models.Book{}}
	svc := services.NewBookService(repo,
		services.NewNotificationService(memNotificationRepo{}), &memStorage{})
	ctrl := NewBookController(svc)

	sessions := auth.NewSessionManager("test-secret", time.Hour)
	r := gin.New()
	books := r.Group("/api/v1/books", middleware.RequireSession(sessions, testCookie))
	books.POST("/create-book", ctrl.CreateBook)
	books.GET("/fetch-books", ctrl.FetchBooks)
	books.GET("/fetch-user-books/:id", ctrl.FetchUserBooks)
	books.POST("/update-book", ctrl.UpdateBook)
	return &bookTestEnv{router: r, sessions: sessions, repo: repo}
}

func (e *bookTestEnv) do(t *testing.T, userID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := e.sessions.Issue(userID, userID+"@uni.edu")
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestBookEndpointsRequireSession(t *testing.T) {
	e := newBookTestEnv()
	w := e.do(t, "", http.MethodGet, "/api/v1/books/fetch-books", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateBookOwnerEnforcement(t *testing.T) {
	e := newBookTestEnv()
	price := 12.0
	require.NoError(t, e.repo.Create(context.Background(), &models.Book{
		Title: "Calculus I", Author: "Stewart", OwnerID: "u-owner",
		For: models.ListingSale, Price: &price, Location: "Campus", Condition: "good",
	}))

	body := map[string]string{
		"book_id":   "b-1",
		"newStatus": "sold",
	}
	w := e.do(t, "u-intruder", http.MethodPost, "/api/v1/books/update-book", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, "u-owner", http.MethodPost, "/api/v1/books/update-book", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"book_status":"sold"`)
}

func TestUpdateBookRejectsUndeclaredStatus(t *testing.T) {
	e := newBookTestEnv()
	body := map[string]string{
		"book_id":   "b-1",
		"newStatus": "vaporized",
	}
	w := e.do(t, "u-owner", http.MethodPost, "/api/v1/books/update-book", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFetchUserBooks(t *testing.T) {
	e := newBookTestEnv()
	price := 20.0
	for _, owner := range []string{"u-1", "u-1", "u-2"} {
		require.NoError(t, e.repo.Create(context.Background(), &models.Book{
			Title: "Some Book", Author: "A. N. Author", OwnerID: owner,
			For: models.ListingSale, Price: &price, Location: "Campus", Condition: "fair",
		}))
	}

	w := e.do(t, "u-1", http.MethodGet, "/api/v1/books/fetch-user-books/u-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool          `json:"success"`
		Books   []models.Book `json:"books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Books, 2)
}
