package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/dto"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/session"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

type AuthHandler struct {
	manager *session.Manager
}

func NewAuthHandler(manager *session.Manager) *AuthHandler {
	return &AuthHandler{manager: manager}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/register", middleware.RateLimiter(10, time.Minute), h.Register)
	auth.Post("/login", middleware.RateLimiter(10, time.Minute), h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/session", h.Session)
	auth.Get("/confirm", h.Confirm)

	requireSession := middleware.RequireSession(h.manager)
	auth.Patch("/profile", requireSession, h.UpdateProfile)
	app.Post("/settings/theme/toggle", requireSession, h.ToggleTheme)
}

// Register handles sign-up. The password confirmation check is local: on
// mismatch no backend call is made.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	if req.Password != req.ConfirmPassword {
		return respondError(c, util.NewValidationError("Passwords do not match"))
	}
	if req.Email == "" || req.Password == "" {
		return respondError(c, util.NewValidationError("Email and password are required"))
	}

	profile, token, err := h.manager.SignUp(c.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		return respondError(c, err)
	}

	if token == "" {
		// User created, session withheld until the email is confirmed.
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Code:    fiber.StatusCreated,
			Message: "Registration successful! Please check your email to confirm your account.",
			Data:    dto.SessionDTO{User: profile},
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Registration successful",
		Data:    dto.SessionDTO{User: profile, Token: token},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	profile, token, err := h.manager.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Signed in",
		Data:    dto.SessionDTO{User: profile, Token: token},
	})
}

// Logout clears the session unconditionally, whatever the store says.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.manager.SignOut(c.Context(), middleware.BearerToken(c))
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Signed out"})
}

// Session reports the active session, or user null when there is none. A
// store failure returns 503 so the caller can keep its prior state instead
// of treating the user as signed out.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	profile, err := h.manager.CheckSession(c.Context(), middleware.BearerToken(c))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusServiceUnavailable,
			Message: "Session check failed, try again",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Session",
		Data:    dto.SessionDTO{User: profile},
	})
}

// Confirm redeems the emailed confirmation token, then redirects to the
// configured landing page when one is set.
func (h *AuthHandler) Confirm(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return respondError(c, util.NewValidationError("Missing confirmation token"))
	}
	if err := h.manager.ConfirmEmail(c.Context(), token); err != nil {
		return respondError(c, err)
	}

	if redirect := config.LoadAuthConfig().ConfirmRedirectURL; redirect != "" {
		return c.Redirect(redirect, fiber.StatusFound)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Email confirmed, you can sign in now"})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	token, _ := c.Locals(middleware.LocalToken).(string)
	profile, err := h.manager.UpdateProfile(c.Context(), token, req.FullName)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile updated",
		Data:    dto.SessionDTO{User: profile},
	})
}

func (h *AuthHandler) ToggleTheme(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	theme := h.manager.ToggleTheme(userID)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Theme updated",
		Data:    fiber.Map{"theme": theme},
	})
}
