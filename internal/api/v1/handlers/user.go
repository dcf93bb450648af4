package handlers

import (
	"strings"
	"time"

	"taskapi/internal/apperr"
	"taskapi/internal/config"
	"taskapi/internal/models"
	"taskapi/internal/repository"
	"taskapi/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    "",
		Expires:  expired,
		HTTPOnly: true,
		Secure:   true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    "",
		Expires:  expired,
		HTTPOnly: true,
		Secure:   true,
	})
}

func Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		FullName string `json:"fullName" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Username string `json:"username" validate:"required,excludesall=@?"`
		Password string `json:"password" validate:"required,min=6"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Bad request", err)
	}

	// Whitespace-only fields count as missing
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		return apperr.New(apperr.Validation, "All fields are required")
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return apperr.Wrap(apperr.Validation, "Validation error", err)
	}

	user, err := repository.CreateUser(req.FullName, req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	logger.AuditLogger.Info("User registered successfully", zap.Int("user_id", user.ID))
	return respond(c, fiber.StatusCreated, user, "User registered successfully")
}

func Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Bad request", err)
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return apperr.New(apperr.Validation, "Email and password are required")
	}
	if err := config.Validate.Struct(req); err != nil {
		return apperr.Wrap(apperr.Validation, "Validation error", err)
	}

	// Unknown email and wrong password answer identically
	user, err := repository.GetUserByEmail(req.Email)
	if err != nil {
		logger.SecurityLogger.Warn("Login with unknown email", zap.String("email", req.Email))
		return apperr.New(apperr.Authentication, "Invalid credentials")
	}
	if !repository.VerifyPassword(user, req.Password) {
		logger.SecurityLogger.Warn("Login with wrong password", zap.Int("user_id", user.ID))
		return apperr.New(apperr.Authentication, "Invalid credentials")
	}

	accessToken, err := config.Tokens.IssueAccessToken(user.ID)
	if err != nil {
		return apperr.Wrap(apperr.Server, "Error generating token", err)
	}
	refreshToken, err := config.Tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return apperr.Wrap(apperr.Server, "Error generating token", err)
	}
	if err := repository.SetRefreshToken(user.ID, refreshToken); err != nil {
		return err
	}

	setAuthCookies(c, accessToken, refreshToken)

	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID))
	return respond(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "User logged in successfully")
}

func Logout(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := repository.ClearRefreshToken(user.ID); err != nil {
		return err
	}
	clearAuthCookies(c)

	logger.AuditLogger.Info("User logged out", zap.Int("user_id", user.ID))
	return respond(c, fiber.StatusOK, fiber.Map{}, "User logged out")
}
