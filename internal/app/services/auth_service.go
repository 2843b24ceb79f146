package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/app/models/dto"
	"github.com/hassy/readcycle/internal/app/repositories"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
	"github.com/hassy/readcycle/internal/pkg/auth"
	"github.com/hassy/readcycle/internal/pkg/email"
	"github.com/hassy/readcycle/internal/pkg/filestorage"
	"github.com/hassy/readcycle/internal/pkg/logger"
)

const (
	otpTTL        = 5 * time.Minute
	resetTokenTTL = 5 * time.Minute
)

// AuthService implements registration, verification, login and the
// account management flows.
type AuthService struct {
	users        repositories.IUserRepository
	notifier     *NotificationService
	mailer       email.Sender
	sessions     *auth.SessionManager
	storage      filestorage.Storage
	clientOrigin string
}

// NewAuthService creates an auth service.
func NewAuthService(
	users repositories.IUserRepository,
	notifier *NotificationService,
	mailer email.Sender,
	sessions *auth.SessionManager,
	storage filestorage.Storage,
	clientOrigin string,
) *AuthService {
	return &AuthService{
		users:        users,
		notifier:     notifier,
		mailer:       mailer,
		sessions:     sessions,
		storage:      storage,
		clientOrigin: clientOrigin,
	}
}

// Sessions exposes the session manager for cookie handling.
func (s *AuthService) Sessions() *auth.SessionManager {
	return s.sessions
}

// Register creates an unverified account with a pending OTP and emails
// the code. The account stays unverified until the code is confirmed.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	otp, err := auth.GenerateOTP()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(otpTTL)

	user := &models.User{
		FullName:                   req.FullName,
		Email:                      req.Email,
		University:                 req.University,
		Major:                      req.Major,
		PasswordHash:               hash,
		VerificationToken:          &otp,
		VerificationTokenExpiresAt: &expiresAt,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationCode(user.Email, otp); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send OTP email")
	}
	s.notifier.Notify(ctx, user.ID, models.NotificationTypeWelcome,
		"Welcome to ReadCycle", "Your account was created. Verify your email to get started.",
		models.PriorityNormal, "register")
	return user, nil
}

// VerifyAccount confirms the emailed OTP, activates the account and
// issues a session token. An expired code leaves the account untouched
// so a resent code can still succeed.
func (s *AuthService) VerifyAccount(ctx context.Context, email, otp string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidOTP
		}
		return nil, "", err
	}
	if user.VerificationToken == nil || *user.VerificationToken != otp {
		return nil, "", apperrors.ErrInvalidOTP
	}
	if user.OTPExpired(time.Now()) {
		return nil, "", apperrors.ErrOTPExpired
	}

	user, err = s.users.Update(ctx, user.ID, map[string]any{
		"is_verified":                   true,
		"is_online":                     true,
		"verification_token":            nil,
		"verification_token_expires_at": nil,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	s.notifier.Notify(ctx, user.ID, models.NotificationTypeAccount,
		"Account verified", "Your email address has been verified.",
		models.PriorityNormal, "verify_account")
	return user, token, nil
}

// ResendOTP regenerates the signup code for an unverified account and
// re-sends the email.
func (s *AuthService) ResendOTP(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return apperrors.ErrValidationFailed
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(otpTTL)
	if _, err := s.users.Update(ctx, user.ID, map[string]any{
		"verification_token":            otp,
		"verification_token_expires_at": expiresAt,
	}); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationCode(user.Email, otp); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to re-send OTP email")
	}
	return nil
}

// Login authenticates by email and password, marks the account online
// and issues a session token.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	user, err = s.users.Update(ctx, user.ID, map[string]any{"is_online": true})
	if err != nil {
		return nil, "", err
	}
	token, err := s.sessions.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	s.notifier.Notify(ctx, user.ID, models.NotificationTypeSecurity,
		"New login", "Your account was signed in.", models.PriorityLow, "login")
	return user, token, nil
}

// CheckAuth returns the account behind a verified session.
func (s *AuthService) CheckAuth(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateUser applies a partial profile update. Changing the password
// requires the current password.
func (s *AuthService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*models.User, error) {
	fields := map[string]any{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.University != nil {
		fields["university"] = *req.University
	}
	if req.Major != nil {
		fields["major"] = *req.Major
	}
	if req.PhoneNumber != nil {
		fields["phone_number"] = *req.PhoneNumber
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}

	if req.Password != nil {
		if req.CurrentPassword == nil {
			return nil, apperrors.ErrValidationFailed
		}
		current, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !auth.CheckPassword(current.PasswordHash, *req.CurrentPassword) {
			return nil, apperrors.ErrInvalidCredentials
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = hash
	}

	user, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, userID, models.NotificationTypeAccount,
		"Profile updated", "Your profile details were updated.",
		models.PriorityLow, "update_user")
	return user, nil
}

// ChangePassword rotates the password of a signed-in user.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.users.Update(ctx, userID, map[string]any{"password_hash": hash})
	return err
}

// RequestPasswordChange starts the forgot-password flow: a random
// token is stored hashed and the plaintext link is emailed.
func (s *AuthService) RequestPasswordChange(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	token, hash, err := auth.GenerateResetToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(resetTokenTTL)
	if _, err := s.users.Update(ctx, user.ID, map[string]any{
		"forget_password_token":            hash,
		"forget_password_token_expires_at": expiresAt,
	}); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.clientOrigin, token)
	if err := s.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send reset email")
	}
	return nil
}

// ChangePasswordWithToken redeems an emailed reset token and sets the
// new password.
func (s *AuthService) ChangePasswordWithToken(ctx context.Context, token, newPassword string) error {
	user, err := s.users.GetByResetTokenHash(ctx, auth.HashToken(token))
	if err != nil {
		return err
	}
	if !user.ResetTokenUsable(time.Now()) {
		return apperrors.ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.users.Update(ctx, user.ID, map[string]any{
		"password_hash":                    hash,
		"forget_password_token":            nil,
		"forget_password_token_expires_at": nil,
	}); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordChanged(user.Email); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send password changed email")
	}
	s.notifier.Notify(ctx, user.ID, models.NotificationTypeSecurity,
		"Password changed", "Your password was changed with a reset link.",
		models.PriorityHigh, "reset_password")
	return nil
}

// UploadProfilePicture stores the uploaded image and points the
// account avatar at it.
func (s *AuthService) UploadProfilePicture(ctx context.Context, userID string, file *multipart.FileHeader) (*models.User, error) {
	url, err := s.storage.Save(file)
	if err != nil {
		if errors.Is(err, filestorage.ErrUnsupportedFileType) {
			return nil, errors.Join(apperrors.ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("store avatar: %w", err)
	}
	return s.users.Update(ctx, userID, map[string]any{"avatar": url})
}

// Logout marks the account offline. The cookie itself is cleared by
// the controller.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	_, err := s.users.Update(ctx, userID, map[string]any{"is_online": false})
	return err
}

// DeleteAccount removes the account and everything it owns.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	return s.users.DeleteCascade(ctx, userID)
}
