package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InscriptionStatus string

const (
	InscriptionPendingPayment   InscriptionStatus = "PENDING_PAYMENT"
	InscriptionConfirmed        InscriptionStatus = "CONFIRMED"
	InscriptionAttended         InscriptionStatus = "ATTENDED"
	InscriptionNoShow           InscriptionStatus = "NO_SHOW"
	InscriptionCancelledByAdmin InscriptionStatus = "CANCELLED_BY_ADMIN"
)

// Active statuses hold a seat. Everything else has given it back.
var ActiveStatuses = []InscriptionStatus{
	InscriptionPendingPayment,
	InscriptionConfirmed,
	InscriptionAttended,
}

func (s InscriptionStatus) Active() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

type PaymentType string

const (
	PaidPerClass  PaymentType = "PAID_PER_CLASS"
	Membership    PaymentType = "MEMBERSHIP"
	Complimentary PaymentType = "COMPLIMENTARY"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaidPerClass, Membership, Complimentary:
		return true
	}
	return false
}

// InscriptionModel is the authoritative enrollment record and the aggregate
// root of the enrollment workflow. It owns exactly one seat claim while in
// an active status. The partial unique index backs the application-level
// duplicate check: two racing creations for the same (student, class) pair
// cannot both land.
type InscriptionModel struct {
	InscriptionID            uuid.UUID `gorm:"column:inscription_id;type:uuid;primaryKey" json:"inscription_id"`
	InscriptionStudentUserID uuid.UUID `gorm:"column:inscription_student_user_id;type:uuid;not null;index:idx_inscription_student_class,priority:1" json:"inscription_student_user_id"`
	InscriptionClassID       uuid.UUID `gorm:"column:inscription_class_id;type:uuid;not null;index:idx_inscription_student_class,priority:2;index" json:"inscription_class_id"`
	InscriptionAcademyID     uuid.UUID `gorm:"column:inscription_academy_id;type:uuid;not null;index" json:"inscription_academy_id"`

	InscriptionProcessedByAdminID uuid.UUID `gorm:"column:inscription_processed_by_admin_id;type:uuid;not null" json:"inscription_processed_by_admin_id"`

	// Unique when present: one inscription per approved reservation.
	InscriptionReservationRequestID *uuid.UUID `gorm:"column:inscription_reservation_request_id;type:uuid;uniqueIndex" json:"inscription_reservation_request_id,omitempty"`

	InscriptionStatus      InscriptionStatus `gorm:"column:inscription_status;type:varchar(30);not null;index" json:"inscription_status"`
	InscriptionPaymentType PaymentType       `gorm:"column:inscription_payment_type;type:varchar(30);not null" json:"inscription_payment_type"`

	InscriptionPaymentID    *uuid.UUID `gorm:"column:inscription_payment_id;type:uuid" json:"inscription_payment_id,omitempty"`
	InscriptionMembershipID *uuid.UUID `gorm:"column:inscription_membership_id;type:uuid" json:"inscription_membership_id,omitempty"`

	InscriptionAmountPaid *float64 `gorm:"column:inscription_amount_paid;type:numeric(12,2)" json:"inscription_amount_paid,omitempty"`
	InscriptionCurrency   *string  `gorm:"column:inscription_currency;type:varchar(3)" json:"inscription_currency,omitempty"`

	InscriptionAdminNotes *string `gorm:"column:inscription_admin_notes;type:text" json:"inscription_admin_notes,omitempty"`

	InscriptionCreatedAt time.Time      `gorm:"column:inscription_created_at;autoCreateTime" json:"inscription_created_at"`
	InscriptionUpdatedAt time.Time      `gorm:"column:inscription_updated_at;autoUpdateTime" json:"inscription_updated_at"`
	InscriptionDeletedAt gorm.DeletedAt `gorm:"column:inscription_deleted_at;index" json:"-"`
}

func (InscriptionModel) TableName() string {
	return "inscriptions"
}
