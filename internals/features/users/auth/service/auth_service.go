package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"academia_backend/internals/configs"
	authModel "academia_backend/internals/features/users/auth/model"
	userModel "academia_backend/internals/features/users/user/model"
	"academia_backend/internals/mailer"
)

const resetTokenTTL = 30 * time.Minute

type AuthService struct {
	DB   *gorm.DB
	Mail mailer.EmailService
}

func NewAuthService(db *gorm.DB, mail mailer.EmailService) *AuthService {
	return &AuthService{DB: db, Mail: mail}
}

func (s *AuthService) Register(userName, email, password string) (*userModel.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.DB.Model(&userModel.User{}).Where("user_email = ?", email).Count(&count).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing email")
	}
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.User{
		UserName:     strings.TrimSpace(userName),
		UserEmail:    email,
		UserPassword: string(hash),
		UserIsActive: true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	if s.Mail != nil {
		if mailErr := s.Mail.Send(mailer.Message{
			To:      user.UserEmail,
			Subject: "Welcome to Academia",
			Body:    fmt.Sprintf("Hi %s, your account has been created.", user.UserName),
		}); mailErr != nil {
			log.Printf("[ERROR] welcome mail to %s failed: %v", user.UserEmail, mailErr)
		}
	}

	return &user, nil
}

func (s *AuthService) Login(email, password string) (*userModel.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user userModel.User
	if err := s.DB.First(&user, "user_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return nil, "", "", fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}
	if !user.UserIsActive {
		return nil, "", "", fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(password)); err != nil {
		return nil, "", "", fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	access, refresh, err := GenerateTokenPair(s.DB, &user)
	if err != nil {
		return nil, "", "", fiber.NewError(fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	return &user, access, refresh, nil
}

func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	userID, err := ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var user userModel.User
	if err := s.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return "", "", fiber.NewError(fiber.StatusUnauthorized, "User not found")
	}
	if !user.UserIsActive {
		return "", "", fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
	}

	access, refresh, err := GenerateTokenPair(s.DB, &user)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	return access, refresh, nil
}

// Logout blacklists the presented access token until its natural expiry.
func (s *AuthService) Logout(rawToken string, expiresAt time.Time) error {
	if rawToken == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing token")
	}
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(AccessTokenTTL)
	}
	entry := authModel.TokenBlacklist{Token: rawToken, ExpiredAt: expiresAt}
	if err := s.DB.Create(&entry).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to revoke token")
	}
	return nil
}

// ForgotPassword always reports success to the caller so the endpoint does
// not leak which emails exist.
func (s *AuthService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user userModel.User
	if err := s.DB.First(&user, "user_email = ? AND user_is_active = TRUE", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[INFO] password reset requested for unknown email")
			return nil
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate reset token")
	}
	token := hex.EncodeToString(raw)
	sum := sha256.Sum256([]byte(token))

	entry := authModel.PasswordResetToken{
		UserID:    user.UserID,
		TokenHash: hex.EncodeToString(sum[:]),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store reset token")
	}

	if s.Mail != nil {
		link := fmt.Sprintf("%s/reset-password?token=%s", configs.AppBaseURL, token)
		if mailErr := s.Mail.Send(mailer.Message{
			To:      user.UserEmail,
			Subject: "Password reset",
			Body:    fmt.Sprintf("Hi %s, reset your password within %d minutes: %s", user.UserName, int(resetTokenTTL.Minutes()), link),
		}); mailErr != nil {
			log.Printf("[ERROR] reset mail to %s failed: %v", user.UserEmail, mailErr)
		}
	}
	return nil
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	sum := sha256.Sum256([]byte(token))
	hash := hex.EncodeToString(sum[:])

	var entry authModel.PasswordResetToken
	if err := s.DB.First(&entry, "token_hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired reset token")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch reset token")
	}
	if entry.UsedAt != nil || time.Now().After(entry.ExpiresAt) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired reset token")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if e := tx.Model(&userModel.User{}).
			Where("user_id = ?", entry.UserID).
			Update("user_password", string(newHash)).Error; e != nil {
			return e
		}
		now := time.Now()
		return tx.Model(&entry).Update("used_at", now).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reset password")
	}
	return nil
}
