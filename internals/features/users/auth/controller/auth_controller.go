package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"academia_backend/internals/features/users/auth/dto"
	"academia_backend/internals/features/users/auth/service"
	helper "academia_backend/internals/helpers"
	"academia_backend/internals/mailer"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(db *gorm.DB, mail mailer.EmailService) *AuthController {
	return &AuthController{Service: service.NewAuthService(db, mail)}
}

var validate = validator.New()

// POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.Register(req.UserName, req.Email, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Account created", fiber.Map{
		"user_id":   user.UserID,
		"user_name": user.UserName,
	})
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, access, refresh, err := ctrl.Service.Login(req.Email, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"user": fiber.Map{
			"user_id":   user.UserID,
			"user_name": user.UserName,
			"is_owner":  user.UserIsOwner,
		},
		"tokens": dto.TokenPairResponse{
			AccessToken:  access,
			RefreshToken: refresh,
			TokenType:    "Bearer",
			ExpiresIn:    int64(service.AccessTokenTTL.Seconds()),
		},
	})
}

// POST /api/auth/refresh
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	access, refresh, err := ctrl.Service.Refresh(req.RefreshToken)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Token refreshed", dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(service.AccessTokenTTL.Seconds()),
	})
}

// POST /api/auth/logout (JWT required)
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	raw := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = c.Cookies("access_token")
	}

	expiresAt := tokenExpiry(raw)
	if err := ctrl.Service.Logout(raw, expiresAt); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Logged out", nil)
}

// POST /api/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.ForgotPassword(req.Email); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "If the email exists, a reset link has been sent", nil)
}

// POST /api/auth/reset-password
func (ctrl *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.ResetPassword(req.Token, req.NewPassword); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Password has been reset", nil)
}

// tokenExpiry reads exp from the (already authenticated) token without
// re-validating it. Zero time when unreadable.
func tokenExpiry(raw string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0)
	}
	return time.Time{}
}
