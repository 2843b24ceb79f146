package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/app/models/dto"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
	"github.com/hassy/readcycle/internal/pkg/filestorage"
)

type bookFixture struct {
	svc     *BookService
	books   *fakeBookRepo
	storage *fakeStorage
}

func newBookFixture() *bookFixture {
	books := newFakeBookRepo()
	storage := &fakeStorage{}
	svc := NewBookService(books, NewNotificationService(newFakeNotificationRepo()), storage)
	return &bookFixture{svc: svc, books: books, storage: storage}
}

func cover() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "cover.jpg"}
}

func saleReq() dto.CreateBookRequest {
	price := 30.0
	return dto.CreateBookRequest{
		Title: "Calculus I", Author: "Stewart", For: "sale",
		Price: &price, Location: "North Campus", Condition: "good",
	}
}

func TestCreateBookSale(t *testing.T) {
	f := newBookFixture()

	book, err := f.svc.CreateBook(context.Background(), "u-1", saleReq(), cover())
	require.NoError(t, err)
	assert.Equal(t, models.BookStatusActive, book.Status)
	assert.Equal(t, 30.0, *book.Price)
	assert.NotEmpty(t, book.Cover)
}

func TestCreateBookSwapDropsPrice(t *testing.T) {
	f := newBookFixture()

	price := 99.0
	req := dto.CreateBookRequest{
		Title: "Organic Chemistry", Author: "Clayden", For: "swap",
		Price: &price, SwapWith: "Physical Chemistry",
		Location: "Library", Condition: "like_new",
	}
	book, err := f.svc.CreateBook(context.Background(), "u-1", req, cover())
	require.NoError(t, err)
	assert.Nil(t, book.Price)
	assert.Equal(t, "Physical Chemistry", book.SwapWith)
}

func TestCreateBookValidation(t *testing.T) {
	f := newBookFixture()

	// Missing cover.
	_, err := f.svc.CreateBook(context.Background(), "u-1", saleReq(), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Sale without price.
	req := saleReq()
	req.Price = nil
	_, err = f.svc.CreateBook(context.Background(), "u-1", req, cover())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Swap without target.
	req = saleReq()
	req.For = "swap"
	_, err = f.svc.CreateBook(context.Background(), "u-1", req, cover())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Rent without period.
	req = saleReq()
	req.For = "rent"
	_, err = f.svc.CreateBook(context.Background(), "u-1", req, cover())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateBookCoverStorageErrors(t *testing.T) {
	f := newBookFixture()

	// A rejected extension is the client's fault.
	f.storage.failWith = fmt.Errorf("%w %q", filestorage.ErrUnsupportedFileType, ".exe")
	_, err := f.svc.CreateBook(context.Background(), "u-1", saleReq(), cover())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Any other storage failure is a server error, not a 400.
	f.storage.failWith = errors.New("disk full")
	_, err = f.svc.CreateBook(context.Background(), "u-1", saleReq(), cover())
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, f.books.books)
}

func TestUpdateBookStatusOwnerOnly(t *testing.T) {
	f := newBookFixture()

	book, err := f.svc.CreateBook(context.Background(), "u-1", saleReq(), cover())
	require.NoError(t, err)

	_, err = f.svc.UpdateBookStatus(context.Background(), "u-2", book.ID, models.BookStatusSold)
	assert.ErrorIs(t, err, apperrors.ErrNotBookOwner)

	updated, err := f.svc.UpdateBookStatus(context.Background(), "u-1", book.ID, models.BookStatusSold)
	require.NoError(t, err)
	assert.Equal(t, models.BookStatusSold, updated.Status)

	stored, err := f.books.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookStatusSold, stored.Status)
}

func TestUpdateBookStatusUnknownBook(t *testing.T) {
	f := newBookFixture()

	_, err := f.svc.UpdateBookStatus(context.Background(), "u-1", "b-404", models.BookStatusSold)
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
}

func TestFetchUserBooks(t *testing.T) {
	f := newBookFixture()

	_, err := f.svc.CreateBook(context.Background(), "u-1", saleReq(), cover())
	require.NoError(t, err)
	_, err = f.svc.CreateBook(context.Background(), "u-2", saleReq(), cover())
	require.NoError(t, err)

	mine, err := f.svc.FetchUserBooks(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := f.svc.FetchBooks(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
