package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserAcademyRole grants a user one role inside one academy.
// At most one live row per (user, academy, role).
type UserAcademyRole struct {
	UserAcademyRoleID        uuid.UUID      `gorm:"column:user_academy_role_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_academy_role_id"`
	UserAcademyRoleUserID    uuid.UUID      `gorm:"column:user_academy_role_user_id;type:uuid;not null;index;uniqueIndex:uq_user_academy_role,priority:1" json:"user_academy_role_user_id"`
	UserAcademyRoleAcademyID uuid.UUID      `gorm:"column:user_academy_role_academy_id;type:uuid;not null;index;uniqueIndex:uq_user_academy_role,priority:2" json:"user_academy_role_academy_id"`
	UserAcademyRoleRole      string         `gorm:"column:user_academy_role_role;type:varchar(20);not null;uniqueIndex:uq_user_academy_role,priority:3" json:"user_academy_role_role"`
	CreatedAt                time.Time      `gorm:"column:user_academy_role_created_at;autoCreateTime" json:"user_academy_role_created_at"`
	DeletedAt                gorm.DeletedAt `gorm:"column:user_academy_role_deleted_at;index" json:"user_academy_role_deleted_at,omitempty"`
}

func (UserAcademyRole) TableName() string { return "user_academy_roles" }
