package users_testing

import (
	"fmt"
	"time"

	users_dto "taskflow/internal/features/users/dto"
	users_models "taskflow/internal/features/users/models"
	users_repositories "taskflow/internal/features/users/repositories"
	users_services "taskflow/internal/features/users/services"

	"github.com/google/uuid"
)

func CreateTestUser() *users_dto.SignInResponseDTO {
	return CreateTestUserWithName("Test User")
}

func CreateTestUserWithName(name string) *users_dto.SignInResponseDTO {
	userID := uuid.New()
	email := fmt.Sprintf("user-%s@test.com", userID.String()[:8])

	hashedPassword := "$2a$10$test"
	user := &users_models.User{
		ID:                   userID,
		Name:                 name,
		Email:                email,
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}

	userRepository := &users_repositories.UserRepository{}
	err := userRepository.CreateUser(user)
	if err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

func GetTestUser(userID uuid.UUID) *users_models.User {
	user, err := users_services.GetUserService().GetUserByID(userID)
	if err != nil {
		panic(err)
	}

	return user
}

// IssueVerificationToken stores a token directly so tests can confirm
// flows without reading the email outbox.
func IssueVerificationToken(identifier string, ttl time.Duration) string {
	token := uuid.New().String()

	repository := &users_repositories.VerificationTokenRepository{}
	err := repository.ReplaceToken(&users_models.VerificationToken{
		Identifier: identifier,
		Token:      token,
		ExpiresAt:  time.Now().UTC().Add(ttl),
	})
	if err != nil {
		panic(err)
	}

	return token
}
