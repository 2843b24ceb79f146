package dto

// RegisterRequest starts registration. The account is created
// unverified and activated once the emailed code is confirmed.
type RegisterRequest struct {
	FullName   string `json:"full_name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	University string `json:"university" binding:"required,min=2,max=150"`
	Major      string `json:"major" binding:"required,min=2,max=100"`
}

// VerifyAccountRequest confirms a signup code.
type VerifyAccountRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// ResendOTPRequest asks for a fresh signup code.
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest partially updates the profile. A password change
// requires the current password alongside the new one.
type UpdateUserRequest struct {
	Email           *string `json:"email" binding:"omitempty,email"`
	University      *string `json:"university" binding:"omitempty,min=2,max=150"`
	Major           *string `json:"major" binding:"omitempty,min=2,max=100"`
	PhoneNumber     *string `json:"phone_number" binding:"omitempty,max=30"`
	Bio             *string `json:"bio" binding:"omitempty,max=500"`
	Password        *string `json:"password" binding:"omitempty,min=6,max=72"`
	CurrentPassword *string `json:"current_password"`
}

// ChangePasswordRequest rotates the password of a signed-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

// RequestPasswordChangeRequest starts the forgot-password flow.
type RequestPasswordChangeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ChangePasswordWithTokenRequest redeems an emailed reset token.
type ChangePasswordWithTokenRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}
