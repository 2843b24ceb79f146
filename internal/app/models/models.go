package models

// ListingType defines what a book is listed for
type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingSwap ListingType = "swap"
	ListingRent ListingType = "rent"
)

// BookStatus defines the lifecycle state of a listing
type BookStatus string

const (
	BookStatusActive BookStatus = "active"
	BookStatusSold   BookStatus = "sold"
	BookStatusSwap   BookStatus = "swap"
	BookStatusRented BookStatus = "rented"
)

// ValidBookStatus reports whether s is one of the declared listing states.
func ValidBookStatus(s BookStatus) bool {
	switch s {
	case BookStatusActive, BookStatusSold, BookStatusSwap, BookStatusRented:
		return true
	}
	return false
}

// MessageStatus defines the delivery state of a chat message
type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

// NotificationPriority defines how prominent a notification should be
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)
