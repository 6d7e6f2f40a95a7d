package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jobtrackr/jobtrackr/internal/session"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

// Locals keys set by RequireSession.
const (
	LocalUserID  = "user_id"
	LocalProfile = "profile"
	LocalToken   = "session_token"
)

// BearerToken extracts the session token from the Authorization header.
// Empty when the header is missing or malformed.
func BearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// RequireSession resolves the bearer token to the cached user profile and
// stores it in locals. Requests without a resolved user never reach the
// record layer.
func RequireSession(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "Not signed in",
			})
		}

		profile, err := manager.CheckSession(c.Context(), token)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusServiceUnavailable,
				Message: "Session check failed, try again",
			}, err)
		}
		if profile == nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "Not signed in",
			})
		}

		c.Locals(LocalUserID, profile.ID)
		c.Locals(LocalProfile, profile)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}
