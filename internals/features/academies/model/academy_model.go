package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademyModel struct {
	AcademyID           uuid.UUID `gorm:"column:academy_id;type:uuid;default:gen_random_uuid();primaryKey" json:"academy_id"`
	AcademyName         string    `gorm:"column:academy_name;type:varchar(150);not null" json:"academy_name"`
	AcademyDescription  *string   `gorm:"column:academy_description;type:text" json:"academy_description,omitempty"`
	AcademyContactEmail *string   `gorm:"column:academy_contact_email;type:varchar(120)" json:"academy_contact_email,omitempty"`
	AcademyContactPhone *string   `gorm:"column:academy_contact_phone;type:varchar(30)" json:"academy_contact_phone,omitempty"`
	AcademyAddress      *string   `gorm:"column:academy_address;type:text" json:"academy_address,omitempty"`
	AcademyIsActive     bool      `gorm:"column:academy_is_active;not null;default:true" json:"academy_is_active"`

	AcademyCreatedAt time.Time      `gorm:"column:academy_created_at;autoCreateTime" json:"academy_created_at"`
	AcademyUpdatedAt time.Time      `gorm:"column:academy_updated_at;autoUpdateTime" json:"academy_updated_at"`
	AcademyDeletedAt gorm.DeletedAt `gorm:"column:academy_deleted_at;index" json:"-"`
}

func (AcademyModel) TableName() string {
	return "academies"
}
