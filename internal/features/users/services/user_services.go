package users_services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	users_dto "taskflow/internal/features/users/dto"
	users_models "taskflow/internal/features/users/models"
	users_repositories "taskflow/internal/features/users/repositories"
	errors_utils "taskflow/internal/util/errors"
)

type UserService struct {
	userRepository      *users_repositories.UserRepository
	secretKeyRepository *users_repositories.SecretKeyRepository
	logger              *slog.Logger
}

func (s *UserService) SignUp(request *users_dto.SignUpRequestDTO) (*users_dto.UserProfileResponseDTO, error) {
	name := strings.TrimSpace(request.Name)
	if len(name) < 2 {
		return nil, errors_utils.NewValidation("Name must be at least 2 characters")
	}

	if len(request.Password) < 6 {
		return nil, errors_utils.NewValidation("Password must be at least 6 characters")
	}

	email := normalizeEmail(request.Email)

	existingUser, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return nil, errors_utils.NewValidation("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)
	now := time.Now().UTC()

	user := &users_models.User{
		ID:                   uuid.New(),
		Name:                 name,
		Email:                email,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up", "userId", user.ID)

	return s.GetCurrentUserProfile(user), nil
}

func (s *UserService) SignIn(request *users_dto.SignInRequestDTO) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, errors_utils.NewValidation("user with this email does not exist")
	}

	if !user.HasPassword() {
		return nil, errors_utils.NewValidation("password is not set for this account")
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, errors_utils.NewValidation("password is incorrect")
	}

	return s.GenerateAccessToken(user)
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims: missing password creation time")
	}

	tokenTimeSeconds := time.Unix(int64(passwordCreationTimeUnix), 0).Truncate(time.Second)
	userTimeSeconds := user.PasswordCreationTime.Truncate(time.Second)

	if !tokenTimeSeconds.Equal(userTimeSeconds) {
		return nil, errors.New("password has been changed, please sign in again")
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.SignInResponseDTO, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	tenYearsExpiration := time.Now().UTC().Add(time.Hour * 24 * 365 * 10)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"exp":                  tenYearsExpiration.Unix(),
		"iat":                  time.Now().UTC().Unix(),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

func (s *UserService) ChangePassword(user *users_models.User, request *users_dto.ChangePasswordRequestDTO) error {
	if len(request.NewPassword) < 6 {
		return errors_utils.NewValidation("Password must be at least 6 characters")
	}

	if !user.HasPassword() {
		return errors_utils.NewValidation("Password not set for this account")
	}

	err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.CurrentPassword))
	if err != nil {
		return errors_utils.NewValidation("Current password is incorrect")
	}

	return s.setPassword(user.ID, request.NewPassword)
}

func (s *UserService) UpdateProfile(
	user *users_models.User,
	request *users_dto.UpdateProfileRequestDTO,
) (*users_dto.UserProfileResponseDTO, error) {
	name := strings.TrimSpace(request.Name)
	if len(name) < 2 {
		return nil, errors_utils.NewValidation("Name must be at least 2 characters")
	}

	if err := s.userRepository.UpdateUserName(user.ID, name); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	updated, err := s.userRepository.GetUserByID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	return s.GetCurrentUserProfile(updated), nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors_utils.NewNotFound("User not found")
		}

		return nil, err
	}

	return user, nil
}

// GetUserByEmail returns nil without error when no user has the email.
func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(normalizeEmail(email))
}

// ChangeUserPasswordByEmail sets a password without the current one. It backs
// the --new-password command line recovery.
func (s *UserService) ChangeUserPasswordByEmail(email string, newPassword string) error {
	if len(newPassword) < 6 {
		return errors_utils.NewValidation("Password must be at least 6 characters")
	}

	user, err := s.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return errors_utils.NewNotFound("User not found")
	}

	return s.setPassword(user.ID, newPassword)
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		EmailVerifiedAt: user.EmailVerifiedAt,
		CreatedAt:       user.CreatedAt,
	}
}

func (s *UserService) setPassword(userID uuid.UUID, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password changed", "userId", userID)

	return nil
}

func ToUserSummary(user *users_models.User) users_dto.UserSummaryDTO {
	return users_dto.UserSummaryDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
