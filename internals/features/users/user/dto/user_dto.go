package dto

import (
	"time"

	"github.com/google/uuid"

	"academia_backend/internals/features/users/user/model"
)

type UserResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	UserIsOwner  bool      `json:"user_is_owner"`
	UserIsActive bool      `json:"user_is_active"`
	CreatedAt    time.Time `json:"user_created_at"`
}

func ToUserResponse(u model.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		UserName:     u.UserName,
		UserEmail:    u.UserEmail,
		UserIsOwner:  u.UserIsOwner,
		UserIsActive: u.UserIsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func ToUserResponses(us []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, ToUserResponse(u))
	}
	return out
}

type AssignRoleRequest struct {
	AcademyID uuid.UUID `json:"academy_id" validate:"required"`
	Role      string    `json:"role" validate:"required,oneof=admin teacher student"`
}

type AcademyRoleResponse struct {
	UserAcademyRoleID uuid.UUID `json:"user_academy_role_id"`
	UserID            uuid.UUID `json:"user_id"`
	AcademyID         uuid.UUID `json:"academy_id"`
	Role              string    `json:"role"`
}

func ToAcademyRoleResponse(r model.UserAcademyRole) AcademyRoleResponse {
	return AcademyRoleResponse{
		UserAcademyRoleID: r.UserAcademyRoleID,
		UserID:            r.UserAcademyRoleUserID,
		AcademyID:         r.UserAcademyRoleAcademyID,
		Role:              r.UserAcademyRoleRole,
	}
}
