package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "academia_backend/internals/features/users/user/model"
	helper "academia_backend/internals/helpers"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return strings.TrimSpace(parts[1]), nil
		}
		return "", errors.New("invalid Authorization header format")
	}
	if cookie := c.Cookies("access_token"); cookie != "" {
		return cookie, nil
	}
	return "", errors.New("missing Authorization header")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	expiry := time.Unix(int64(expFloat), 0)
	if time.Now().After(expiry.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var active bool
	err := db.Model(&userModel.User{}).
		Select("user_is_active").
		Where("user_id = ?", userID).
		Take(&active).Error
	if err != nil {
		return err
	}
	if !active {
		return errors.New("user inactive")
	}
	return nil
}

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if name, ok := claims["user_name"].(string); ok {
		c.Locals("user_name", name)
	}
	if owner, ok := claims["is_owner"].(bool); ok {
		c.Locals("is_owner", owner)
	}

	// academy_roles claim: [{academy_id, role}, ...]
	rolesRaw, ok := claims["academy_roles"].([]interface{})
	if !ok {
		return
	}
	roles := make([]helper.AcademyRole, 0, len(rolesRaw))
	for _, rr := range rolesRaw {
		m, ok := rr.(map[string]interface{})
		if !ok {
			continue
		}
		idStr, _ := m["academy_id"].(string)
		role, _ := m["role"].(string)
		id, err := uuid.Parse(idStr)
		if err != nil || role == "" {
			continue
		}
		roles = append(roles, helper.AcademyRole{AcademyID: id, Role: role})
	}
	c.Locals("academy_roles", roles)
}
