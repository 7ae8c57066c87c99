package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonModel struct {
	PersonID        uuid.UUID  `gorm:"column:person_id;type:uuid;default:gen_random_uuid();primaryKey" json:"person_id"`
	PersonFirstName string     `gorm:"column:person_first_name;type:varchar(100);not null" json:"person_first_name"`
	PersonLastName  string     `gorm:"column:person_last_name;type:varchar(100);not null" json:"person_last_name"`
	PersonEmail     *string    `gorm:"column:person_email;type:varchar(120);index" json:"person_email,omitempty"`
	PersonPhone     *string    `gorm:"column:person_phone;type:varchar(30)" json:"person_phone,omitempty"`
	PersonBirthDate *time.Time `gorm:"column:person_birth_date" json:"person_birth_date,omitempty"`
	PersonNotes     *string    `gorm:"column:person_notes;type:text" json:"person_notes,omitempty"`

	// Optional link to a login account. A person can exist without one.
	PersonUserID *uuid.UUID `gorm:"column:person_user_id;type:uuid;index" json:"person_user_id,omitempty"`

	PersonCreatedAt time.Time      `gorm:"column:person_created_at;autoCreateTime" json:"person_created_at"`
	PersonUpdatedAt time.Time      `gorm:"column:person_updated_at;autoUpdateTime" json:"person_updated_at"`
	PersonDeletedAt gorm.DeletedAt `gorm:"column:person_deleted_at;index" json:"-"`
}

func (PersonModel) TableName() string {
	return "persons"
}
