// Package apperrors defines the sentinel errors shared by the service
// layer and the HTTP error middleware.
package apperrors

import "errors"

// Authentication and account errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidOTP         = errors.New("invalid verification code")
	ErrOTPExpired         = errors.New("verification code expired")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// Marketplace errors.
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrNotBookOwner   = errors.New("only the owner can modify this listing")
	ErrInvalidStatus  = errors.New("invalid listing status")
	ErrInvalidListing = errors.New("invalid listing type")
)

// Chat errors.
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")
	ErrEmptyMessage         = errors.New("message content cannot be empty")
)

// Notification errors.
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// General errors.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrResourceNotFound = errors.New("resource not found")
	ErrDatabaseError    = errors.New("database error")
)
