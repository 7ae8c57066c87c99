package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/configs"
	userModel "academia_backend/internals/features/users/user/model"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type academyRoleClaim struct {
	AcademyID string `json:"academy_id"`
	Role      string `json:"role"`
}

// GenerateTokenPair issues an access and a refresh token. The access token
// carries the per-academy role claims read by the route guards.
func GenerateTokenPair(db *gorm.DB, user *userModel.User) (access string, refresh string, err error) {
	var roleRows []userModel.UserAcademyRole
	if err = db.Where("user_academy_role_user_id = ?", user.UserID).Find(&roleRows).Error; err != nil {
		return "", "", err
	}

	roles := make([]academyRoleClaim, 0, len(roleRows))
	for _, r := range roleRows {
		roles = append(roles, academyRoleClaim{
			AcademyID: r.UserAcademyRoleAcademyID.String(),
			Role:      r.UserAcademyRoleRole,
		})
	}

	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":           user.UserID.String(),
		"user_name":     user.UserName,
		"is_owner":      user.UserIsOwner,
		"academy_roles": roles,
		"typ":           "access",
		"iat":           now.Unix(),
		"exp":           now.Add(AccessTokenTTL).Unix(),
	}
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"sub": user.UserID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(RefreshTokenTTL).Unix(),
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// ParseRefreshToken validates a refresh token and returns the user id.
func ParseRefreshToken(raw string) (uuid.UUID, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	return uuid.Parse(sub)
}
