package users_services

import (
	users_repositories "taskflow/internal/features/users/repositories"
	"taskflow/internal/util/logger"
)

var secretKeyRepository = &users_repositories.SecretKeyRepository{}
var userRepository = &users_repositories.UserRepository{}
var verificationTokenRepository = &users_repositories.VerificationTokenRepository{}

var userService = &UserService{
	userRepository:      userRepository,
	secretKeyRepository: secretKeyRepository,
	logger:              logger.GetLogger(),
}

var accountService = &AccountService{
	userService:     userService,
	tokenRepository: verificationTokenRepository,
	logger:          logger.GetLogger(),
}

func GetUserService() *UserService {
	return userService
}

func GetAccountService() *AccountService {
	return accountService
}
