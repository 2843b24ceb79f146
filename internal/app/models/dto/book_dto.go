package dto

// CreateBookRequest creates a new listing. The cover image arrives as
// a multipart file alongside these form fields.
type CreateBookRequest struct {
	Title        string   `form:"book_title" binding:"required,min=2,max=200"`
	Author       string   `form:"book_author" binding:"required,min=1,max=150"`
	For          string   `form:"book_for" binding:"required,oneof=sale swap rent"`
	To           string   `form:"book_to" binding:"omitempty,max=150"`
	Price        *float64 `form:"book_price" binding:"omitempty,gte=0"`
	Location     string   `form:"book_location" binding:"required,min=2,max=150"`
	Condition    string   `form:"book_condition" binding:"required,max=50"`
	Description  string   `form:"book_description" binding:"omitempty,max=2000"`
	Course       string   `form:"book_course" binding:"omitempty,max=50"`
	SwapWith     string   `form:"book_swap_with" binding:"omitempty,max=200"`
	RentalPeriod string   `form:"book_rental_period" binding:"omitempty,max=100"`
}

// UpdateBookStatusRequest moves a listing through its lifecycle.
type UpdateBookStatusRequest struct {
	BookID    string `json:"book_id" binding:"required"`
	NewStatus string `json:"newStatus" binding:"required,oneof=active sold swap rented"`
}
