package users_controllers

import (
	users_services "taskflow/internal/features/users/services"
	"taskflow/internal/util/rate_limit"

	"golang.org/x/time/rate"
)

var userController = &UserController{
	userService:   users_services.GetUserService(),
	signinLimiter: rate.NewLimiter(rate.Limit(3), 3), // 3 RPS with burst of 3
}

var accountController = &AccountController{
	accountService: users_services.GetAccountService(),
	rateLimiter:    rate_limit.NewRateLimiter(),
}

func GetUserController() *UserController {
	return userController
}

func GetAccountController() *AccountController {
	return accountController
}
