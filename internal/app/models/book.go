package models

import "time"

// Book represents a textbook listing. Column and JSON names follow the
// public wire format (book_title, book_owner, ...).
type Book struct {
	ID           string      `json:"book_id"`
	Title        string      `json:"book_title"`
	Author       string      `json:"book_author"`
	OwnerID      string      `json:"book_owner"`
	For          ListingType `json:"book_for"`
	To           string      `json:"book_to,omitempty"`
	Price        *float64    `json:"book_price,omitempty"`
	Location     string      `json:"book_location"`
	Condition    string      `json:"book_condition"`
	Description  string      `json:"book_description,omitempty"`
	Course       string      `json:"book_course,omitempty"`
	Cover        string      `json:"book_cover,omitempty"`
	SwapWith     string      `json:"book_swap_with,omitempty"`
	RentalPeriod string      `json:"book_rental_period,omitempty"`
	Status       BookStatus  `json:"book_status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	// Owner fields populated on reads that join the users table.
	OwnerName   string `json:"owner_name,omitempty"`
	OwnerAvatar string `json:"owner_avatar,omitempty"`
}
