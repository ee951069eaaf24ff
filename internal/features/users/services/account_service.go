package users_services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"taskflow/internal/config"
	users_dto "taskflow/internal/features/users/dto"
	users_interfaces "taskflow/internal/features/users/interfaces"
	users_models "taskflow/internal/features/users/models"
	users_repositories "taskflow/internal/features/users/repositories"
	errors_utils "taskflow/internal/util/errors"
)

const (
	passwordResetTTL     = time.Hour
	emailVerificationTTL = 24 * time.Hour
)

// AccountService owns the token based flows: password reset and email verification.
type AccountService struct {
	userService     *UserService
	tokenRepository *users_repositories.VerificationTokenRepository
	logger          *slog.Logger
	emailSender     users_interfaces.EmailSender
}

func (s *AccountService) SetEmailSender(sender users_interfaces.EmailSender) {
	s.emailSender = sender
}

// RequestPasswordReset never reveals whether the email is registered.
func (s *AccountService) RequestPasswordReset(request *users_dto.PasswordResetRequestDTO) error {
	user, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil
	}

	token, err := s.issueToken(users_models.PasswordResetIdentifier(user.Email), passwordResetTTL)
	if err != nil {
		return err
	}

	resetURL := s.buildLink("/auth/reset-password", token, user.Email)
	if s.emailSender != nil {
		s.emailSender.SendPasswordResetEmail(user.Email, displayName(user), resetURL)
	}

	return nil
}

func (s *AccountService) ResetPassword(request *users_dto.PasswordResetConfirmDTO) error {
	email := normalizeEmail(request.Email)
	identifier := users_models.PasswordResetIdentifier(email)

	if err := s.consumeToken(identifier, request.Token, "reset"); err != nil {
		return err
	}

	user, err := s.userService.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return errors_utils.NewValidation("Invalid or expired reset token")
	}

	return s.userService.setPassword(user.ID, request.Password)
}

func (s *AccountService) RequestEmailVerification(request *users_dto.EmailVerificationRequestDTO) error {
	user, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil
	}

	if user.IsEmailVerified() {
		return errors_utils.NewValidation("Email is already verified")
	}

	token, err := s.issueToken(user.Email, emailVerificationTTL)
	if err != nil {
		return err
	}

	verifyURL := s.buildLink("/auth/verify-email", token, user.Email)
	if s.emailSender != nil {
		s.emailSender.SendVerificationEmail(user.Email, displayName(user), verifyURL)
	}

	return nil
}

func (s *AccountService) VerifyEmail(request *users_dto.EmailVerificationConfirmDTO) error {
	email := normalizeEmail(request.Email)

	if err := s.consumeToken(email, request.Token, "verification"); err != nil {
		return err
	}

	user, err := s.userService.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return errors_utils.NewValidation("Invalid or expired verification token")
	}

	if err := s.userService.userRepository.MarkEmailVerified(user.ID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	s.logger.Info("email verified", "userId", user.ID)

	return nil
}

func (s *AccountService) issueToken(identifier string, ttl time.Duration) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := hex.EncodeToString(raw)

	err := s.tokenRepository.ReplaceToken(&users_models.VerificationToken{
		Identifier: identifier,
		Token:      token,
		ExpiresAt:  time.Now().UTC().Add(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// consumeToken deletes the token whether it is used or expired.
func (s *AccountService) consumeToken(identifier string, token string, purpose string) error {
	stored, err := s.tokenRepository.GetToken(identifier, token)
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}

	if stored == nil {
		return errors_utils.NewValidationf("Invalid or expired %s token", purpose)
	}

	if err := s.tokenRepository.DeleteToken(identifier, token); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	if stored.IsExpired(time.Now().UTC()) {
		return errors_utils.NewValidationf("The %s token has expired. Please request a new one.", purpose)
	}

	return nil
}

func (s *AccountService) buildLink(path string, token string, email string) string {
	query := url.Values{}
	query.Set("token", token)
	query.Set("email", email)

	return config.GetEnv().AppBaseURL + path + "?" + query.Encode()
}

func displayName(user *users_models.User) string {
	if user.Name == "" {
		return "User"
	}

	return user.Name
}
