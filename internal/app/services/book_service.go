package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/app/models/dto"
	"github.com/hassy/readcycle/internal/app/repositories"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
	"github.com/hassy/readcycle/internal/pkg/filestorage"
)

// BookService implements the marketplace listings.
type BookService struct {
	books    repositories.IBookRepository
	notifier *NotificationService
	storage  filestorage.Storage
}

// NewBookService creates a book service.
func NewBookService(books repositories.IBookRepository, notifier *NotificationService, storage filestorage.Storage) *BookService {
	return &BookService{books: books, notifier: notifier, storage: storage}
}

// CreateBook validates and stores a new listing with its cover image.
// Fields that don't apply to the listing type are dropped: a swap
// listing carries no price, a sale no swap target.
func (s *BookService) CreateBook(ctx context.Context, ownerID string, req dto.CreateBookRequest, cover *multipart.FileHeader) (*models.Book, error) {
	if cover == nil {
		return nil, errors.Join(apperrors.ErrValidationFailed, errors.New("cover image is required"))
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		OwnerID:     ownerID,
		For:         models.ListingType(req.For),
		To:          req.To,
		Location:    req.Location,
		Condition:   req.Condition,
		Description: req.Description,
		Course:      req.Course,
	}
	switch book.For {
	case models.ListingSale:
		if req.Price == nil {
			return nil, errors.Join(apperrors.ErrValidationFailed, errors.New("book_price is required for sale listings"))
		}
		book.Price = req.Price
	case models.ListingSwap:
		if req.SwapWith == "" {
			return nil, errors.Join(apperrors.ErrValidationFailed, errors.New("book_swap_with is required for swap listings"))
		}
		book.SwapWith = req.SwapWith
	case models.ListingRent:
		if req.RentalPeriod == "" {
			return nil, errors.Join(apperrors.ErrValidationFailed, errors.New("book_rental_period is required for rent listings"))
		}
		book.RentalPeriod = req.RentalPeriod
		book.Price = req.Price
	default:
		return nil, apperrors.ErrInvalidListing
	}

	coverURL, err := s.storage.Save(cover)
	if err != nil {
		if errors.Is(err, filestorage.ErrUnsupportedFileType) {
			return nil, errors.Join(apperrors.ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("store cover: %w", err)
	}
	book.Cover = coverURL

	if err := s.books.Create(ctx, book); err != nil {
		// The cover was already written; remove the orphan.
		_ = s.storage.Delete(coverURL)
		return nil, err
	}

	s.notifier.Notify(ctx, ownerID, models.NotificationTypeBook,
		"New Book Listed", "Your listing \""+book.Title+"\" is now live.",
		models.PriorityNormal, "create_book")
	return book, nil
}

// FetchBooks returns every listing with its owner summary.
func (s *BookService) FetchBooks(ctx context.Context) ([]models.Book, error) {
	return s.books.ListAll(ctx)
}

// FetchUserBooks returns the listings of one seller.
func (s *BookService) FetchUserBooks(ctx context.Context, ownerID string) ([]models.Book, error) {
	return s.books.ListByOwner(ctx, ownerID)
}

// UpdateBookStatus moves a listing to a new lifecycle state. Only the
// owner may change a listing.
func (s *BookService) UpdateBookStatus(ctx context.Context, requesterID, bookID string, status models.BookStatus) (*models.Book, error) {
	if !models.ValidBookStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.OwnerID != requesterID {
		return nil, apperrors.ErrNotBookOwner
	}

	if err := s.books.UpdateStatus(ctx, bookID, status); err != nil {
		return nil, err
	}
	book.Status = status
	return book, nil
}
