package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending         ReservationStatus = "PENDING"
	ReservationApproved        ReservationStatus = "APPROVED"
	ReservationRejected        ReservationStatus = "REJECTED"
	ReservationCancelledByUser ReservationStatus = "CANCELLED_BY_USER"
)

// Terminal reports whether the request can still move. PENDING is the only
// live state; everything else is frozen.
func (s ReservationStatus) Terminal() bool {
	return s != ReservationPending
}

// ReservationModel is a student's unconfirmed ask for a seat. It never
// touches the seat counter itself; an approval hands over to the
// enrollment routine and records the resulting inscription id as a
// read-only link.
type ReservationModel struct {
	ReservationID            uuid.UUID `gorm:"column:reservation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"reservation_id"`
	ReservationStudentUserID uuid.UUID `gorm:"column:reservation_student_user_id;type:uuid;not null;index" json:"reservation_student_user_id"`
	ReservationClassID       uuid.UUID `gorm:"column:reservation_class_id;type:uuid;not null;index" json:"reservation_class_id"`
	ReservationAcademyID     uuid.UUID `gorm:"column:reservation_academy_id;type:uuid;not null;index" json:"reservation_academy_id"`

	ReservationStatus ReservationStatus `gorm:"column:reservation_status;type:varchar(30);not null;default:'PENDING';index" json:"reservation_status"`

	ReservationStudentNotes *string `gorm:"column:reservation_student_notes;type:text" json:"reservation_student_notes,omitempty"`
	ReservationAdminNotes   *string `gorm:"column:reservation_admin_notes;type:text" json:"reservation_admin_notes,omitempty"`

	ReservationProcessedByAdminID *uuid.UUID `gorm:"column:reservation_processed_by_admin_id;type:uuid" json:"reservation_processed_by_admin_id,omitempty"`
	ReservationInscriptionID      *uuid.UUID `gorm:"column:reservation_inscription_id;type:uuid" json:"reservation_inscription_id,omitempty"`

	ReservationCreatedAt time.Time      `gorm:"column:reservation_created_at;autoCreateTime" json:"reservation_created_at"`
	ReservationUpdatedAt time.Time      `gorm:"column:reservation_updated_at;autoUpdateTime" json:"reservation_updated_at"`
	ReservationDeletedAt gorm.DeletedAt `gorm:"column:reservation_deleted_at;index" json:"-"`
}

func (ReservationModel) TableName() string {
	return "reservation_requests"
}
