package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/app/models/dto"
	"github.com/hassy/readcycle/internal/app/services"
	"github.com/hassy/readcycle/internal/middleware"
)

// BookController serves the marketplace listing endpoints.
type BookController struct {
	books *services.BookService
}

// NewBookController creates a book controller.
func NewBookController(books *services.BookService) *BookController {
	return &BookController{books: books}
}

// CreateBook handles POST /books/create-book (multipart).
func (bc *BookController) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	cover, err := c.FormFile("book_cover")
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.CodeValidationFailed, "book_cover image is required", nil))
		return
	}

	book, err := bc.books.CreateBook(c.Request.Context(), middleware.UserID(c), req, cover)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Book listed",
		"book":    book,
	})
}

// FetchBooks handles GET /books/fetch-books.
func (bc *BookController) FetchBooks(c *gin.Context) {
	books, err := bc.books.FetchBooks(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "books": books})
}

// FetchUserBooks handles GET /books/fetch-user-books/:id.
func (bc *BookController) FetchUserBooks(c *gin.Context) {
	books, err := bc.books.FetchUserBooks(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "books": books})
}

// UpdateBook handles POST /books/update-book. Only the listing owner
// may change the status.
func (bc *BookController) UpdateBook(c *gin.Context) {
	var req dto.UpdateBookStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	book, err := bc.books.UpdateBookStatus(c.Request.Context(), middleware.UserID(c),
		req.BookID, models.BookStatus(req.NewStatus))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Book status updated",
		"book":    book,
	})
}
