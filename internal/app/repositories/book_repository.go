package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
	"github.com/hassy/readcycle/internal/pkg/dberrors"
)

const bookColumns = `b.book_id, b.book_title, b.book_author, b.book_owner, b.book_for,
	b.book_to, b.book_price, b.book_location, b.book_condition, b.book_description,
	b.book_course, b.book_cover, b.book_swap_with, b.book_rental_period,
	b.book_status, b.created_at, b.updated_at`

// BookRepository is the PostgreSQL implementation of IBookRepository.
type BookRepository struct {
	db DB
}

// NewBookRepository creates a book repository.
func NewBookRepository(db DB) *BookRepository {
	return &BookRepository{db: db}
}

func scanBook(row pgx.Row, withOwner bool) (*models.Book, error) {
	var b models.Book
	var to, description, course, cover, swapWith, rentalPeriod *string
	dest := []any{
		&b.ID, &b.Title, &b.Author, &b.OwnerID, &b.For,
		&to, &b.Price, &b.Location, &b.Condition, &description,
		&course, &cover, &swapWith, &rentalPeriod,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	var ownerName string
	var ownerAvatar *string
	if withOwner {
		dest = append(dest, &ownerName, &ownerAvatar)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	for field, src := range map[*string]*string{
		&b.To: to, &b.Description: description, &b.Course: course,
		&b.Cover: cover, &b.SwapWith: swapWith, &b.RentalPeriod: rentalPeriod,
	} {
		if src != nil {
			*field = *src
		}
	}
	if withOwner {
		b.OwnerName = ownerName
		if ownerAvatar != nil {
			b.OwnerAvatar = *ownerAvatar
		}
	}
	return &b, nil
}

// Create inserts a listing and fills the generated id and timestamps.
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO books (book_title, book_author, book_owner, book_for, book_to,
			book_price, book_location, book_condition, book_description, book_course,
			book_cover, book_swap_with, book_rental_period)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING book_id, book_status, created_at, updated_at`,
		book.Title, book.Author, book.OwnerID, book.For, nullable(book.To),
		book.Price, book.Location, book.Condition, nullable(book.Description),
		nullable(book.Course), nullable(book.Cover), nullable(book.SwapWith),
		nullable(book.RentalPeriod),
	).Scan(&book.ID, &book.Status, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetByID fetches a listing by primary key.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM books b WHERE b.book_id = $1`, bookColumns), id)
	b, err := scanBook(row, false)
	if err != nil {
		return nil, dberrors.Map(err, apperrors.ErrBookNotFound)
	}
	return b, nil
}

// ListAll returns every listing joined with its owner, newest first.
func (r *BookRepository) ListAll(ctx context.Context) ([]models.Book, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s, u.full_name, u.avatar
		FROM books b
		JOIN users u ON u.user_id = b.book_owner
		ORDER BY b.created_at DESC`, bookColumns))
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()
	return collectBooks(rows, true)
}

// ListByOwner returns the listings of one seller, newest first.
func (r *BookRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM books b
		WHERE b.book_owner = $1
		ORDER BY b.created_at DESC`, bookColumns), ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner books: %w", err)
	}
	defer rows.Close()
	return collectBooks(rows, false)
}

func collectBooks(rows pgx.Rows, withOwner bool) ([]models.Book, error) {
	books := make([]models.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows, withOwner)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

// UpdateStatus moves a listing to a new lifecycle state.
func (r *BookRepository) UpdateStatus(ctx context.Context, id string, status models.BookStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE books SET book_status = $1, updated_at = now()
		WHERE book_id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update book status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}
	return nil
}
