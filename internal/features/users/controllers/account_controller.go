package users_controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	users_dto "taskflow/internal/features/users/dto"
	users_services "taskflow/internal/features/users/services"
	errors_utils "taskflow/internal/util/errors"
	"taskflow/internal/util/logger"
	"taskflow/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
)

const (
	emailRequestsPerMinute = 3
	emailRequestsBurst     = 3
)

type AccountController struct {
	accountService *users_services.AccountService
	rateLimiter    *rate_limit.RateLimiter
}

func (c *AccountController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users/password-reset/request", c.RequestPasswordReset)
	router.POST("/users/password-reset/confirm", c.ResetPassword)
	router.POST("/users/email-verification/request", c.RequestEmailVerification)
	router.GET("/users/email-verification/confirm", c.VerifyEmail)
}

// RequestPasswordReset
// @Summary Request a password reset link
// @Description Always reports success so callers cannot probe which emails are registered
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.PasswordResetRequestDTO true "Email"
// @Success 200 {object} users_dto.MessageResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /users/password-reset/request [post]
func (c *AccountController) RequestPasswordReset(ctx *gin.Context) {
	var request users_dto.PasswordResetRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if !c.allow(ctx, "password_reset", request.Email) {
		return
	}

	if err := c.accountService.RequestPasswordReset(&request); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users_dto.MessageResponseDTO{
		Message: "If the email exists, a password reset link has been sent",
	})
}

// ResetPassword
// @Summary Reset password with a token
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.PasswordResetConfirmDTO true "Token, email and new password"
// @Success 200 {object} users_dto.MessageResponseDTO
// @Failure 400 {object} map[string]string
// @Router /users/password-reset/confirm [post]
func (c *AccountController) ResetPassword(ctx *gin.Context) {
	var request users_dto.PasswordResetConfirmDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.accountService.ResetPassword(&request); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users_dto.MessageResponseDTO{Message: "Password reset successfully!"})
}

// RequestEmailVerification
// @Summary Send an email verification link
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.EmailVerificationRequestDTO true "Email"
// @Success 200 {object} users_dto.MessageResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /users/email-verification/request [post]
func (c *AccountController) RequestEmailVerification(ctx *gin.Context) {
	var request users_dto.EmailVerificationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if !c.allow(ctx, "email_verification", request.Email) {
		return
	}

	if err := c.accountService.RequestEmailVerification(&request); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users_dto.MessageResponseDTO{
		Message: "If the email exists, a verification link has been sent",
	})
}

// VerifyEmail
// @Summary Verify email with a token
// @Tags users
// @Produce json
// @Param token query string true "Verification token"
// @Param email query string true "Email"
// @Success 200 {object} users_dto.MessageResponseDTO
// @Failure 400 {object} map[string]string
// @Router /users/email-verification/confirm [get]
func (c *AccountController) VerifyEmail(ctx *gin.Context) {
	var request users_dto.EmailVerificationConfirmDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Token and email are required"})
		return
	}

	if err := c.accountService.VerifyEmail(&request); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users_dto.MessageResponseDTO{Message: "Email verified successfully!"})
}

// allow writes the 429 response itself when the bucket is empty. A Valkey
// outage lets the request through.
func (c *AccountController) allow(ctx *gin.Context, scope string, email string) bool {
	key := fmt.Sprintf("%s:%s", scope, strings.ToLower(strings.TrimSpace(email)))

	result, err := c.rateLimiter.CheckRateLimit(key, emailRequestsPerMinute, emailRequestsBurst)
	if err != nil {
		logger.GetLogger().Error("rate limit check failed", "scope", scope, "error", err)
		return true
	}

	if !result.Allowed {
		ctx.Header("Retry-After", strconv.Itoa(result.RetryAfterSec))
		ctx.JSON(
			http.StatusTooManyRequests,
			gin.H{"error": "Rate limit exceeded. Please try again later."},
		)
		return false
	}

	return true
}
