package middleware

import (
	"strings"

	"taskapi/internal/apperr"
	"taskapi/internal/config"
	"taskapi/internal/repository"
	"taskapi/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// extractToken pulls the access token off the request. The accessToken
// cookie wins; the Authorization header is the fallback.
func extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies("accessToken"); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RequireAuth verifies the access token, loads the user it names and makes
// both available to downstream handlers via Locals. Every failure is a
// plain 401; the response never says which check rejected the request.
func RequireAuth(c *fiber.Ctx) error {
	tokenString := extractToken(c)
	if tokenString == "" {
		return apperr.New(apperr.Authentication, "Unauthorized request")
	}

	userID, err := config.Tokens.VerifyAccessToken(tokenString)
	if err != nil {
		logger.SecurityLogger.Warn("Access token rejected",
			zap.String("path", c.Path()),
		)
		return apperr.New(apperr.Authentication, "Invalid or expired access token")
	}

	user, err := repository.GetUserByID(userID)
	if err != nil {
		logger.SecurityLogger.Warn("Token names a missing user",
			zap.Int("user_id", userID),
		)
		return apperr.New(apperr.Authentication, "Invalid or expired access token")
	}

	c.Locals("user", user)
	c.Locals("userID", user.ID)
	return c.Next()
}
