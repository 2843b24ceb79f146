package models

import "time"

// User represents a registered marketplace account. Verification and
// password reset tokens live on the row itself; an account exists in
// unverified state between registration and OTP confirmation.
type User struct {
	ID           string    `json:"user_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar,omitempty"`
	IsOnline     bool      `json:"is_online"`
	University   string    `json:"university"`
	Major        string    `json:"major,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	PasswordHash string    `json:"-"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Token columns, never serialized.
	ForgetPasswordToken          *string    `json:"-"`
	ForgetPasswordTokenExpiresAt *time.Time `json:"-"`
	VerificationToken            *string    `json:"-"`
	VerificationTokenExpiresAt   *time.Time `json:"-"`
}

// OTPExpired reports whether the pending verification code has lapsed.
func (u *User) OTPExpired(now time.Time) bool {
	return u.VerificationTokenExpiresAt == nil || now.After(*u.VerificationTokenExpiresAt)
}

// ResetTokenUsable reports whether the stored reset token can still redeem.
func (u *User) ResetTokenUsable(now time.Time) bool {
	return u.ForgetPasswordToken != nil &&
		u.ForgetPasswordTokenExpiresAt != nil &&
		now.Before(*u.ForgetPasswordTokenExpiresAt)
}
