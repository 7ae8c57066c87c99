package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassModel is a scheduled offering with a finite seat capacity.
// class_enrolled_count moves only through the capacity service; every other
// writer must leave it alone.
type ClassModel struct {
	ClassID          uuid.UUID `gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_id"`
	ClassAcademyID   uuid.UUID `gorm:"column:class_academy_id;type:uuid;not null;index" json:"class_academy_id"`
	ClassName        string    `gorm:"column:class_name;type:varchar(150);not null" json:"class_name"`
	ClassDescription *string   `gorm:"column:class_description;type:text" json:"class_description,omitempty"`

	ClassTeacherUserID *uuid.UUID `gorm:"column:class_teacher_user_id;type:uuid;index" json:"class_teacher_user_id,omitempty"`

	ClassStartTime *time.Time `gorm:"column:class_start_time;index" json:"class_start_time,omitempty"`
	ClassEndTime   *time.Time `gorm:"column:class_end_time" json:"class_end_time,omitempty"`

	ClassPrice    float64 `gorm:"column:class_price;type:numeric(12,2);not null;default:0" json:"class_price"`
	ClassCurrency string  `gorm:"column:class_currency;type:varchar(3);not null;default:'USD'" json:"class_currency"`

	ClassCapacity      int `gorm:"column:class_capacity;not null;default:0;check:class_capacity >= 0" json:"class_capacity"`
	ClassEnrolledCount int `gorm:"column:class_enrolled_count;not null;default:0;check:class_enrolled_count >= 0 AND class_enrolled_count <= class_capacity" json:"class_enrolled_count"`

	ClassIsActive bool `gorm:"column:class_is_active;not null;default:true" json:"class_is_active"`

	ClassCreatedAt time.Time      `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"-"`
}

func (ClassModel) TableName() string {
	return "classes"
}

// SeatsAvailable is a read-side convenience; never use it to decide a
// reservation, that is the capacity service's job.
func (m *ClassModel) SeatsAvailable() int {
	n := m.ClassCapacity - m.ClassEnrolledCount
	if n < 0 {
		return 0
	}
	return n
}
