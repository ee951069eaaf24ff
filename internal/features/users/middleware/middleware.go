package users_middleware

import (
	"strings"

	users_models "taskflow/internal/features/users/models"
	users_services "taskflow/internal/features/users/services"
	errors_utils "taskflow/internal/util/errors"

	"github.com/gin-gonic/gin"
)

const (
	userContextKey = "user"
	bearerScheme   = "bearer"
)

// AuthMiddleware resolves the bearer token to a user and aborts with 401
// when the header is missing, malformed or the token is no longer valid.
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := extractBearerToken(ctx.GetHeader("Authorization"))
		if !ok {
			errors_utils.RespondWithError(ctx, errors_utils.NewUnauthenticated("Authorization token required"))
			ctx.Abort()
			return
		}

		user, err := userService.GetUserFromToken(token)
		if err != nil {
			errors_utils.RespondWithError(ctx, errors_utils.NewUnauthenticated("Invalid token"))
			ctx.Abort()
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users_models.User)

	return user, ok && user != nil
}

func extractBearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
