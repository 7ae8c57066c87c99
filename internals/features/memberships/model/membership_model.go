package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MembershipRelation string

const (
	RelationStudent  MembershipRelation = "student"
	RelationTeacher  MembershipRelation = "teacher"
	RelationStaff    MembershipRelation = "staff"
	RelationGuardian MembershipRelation = "guardian"
)

func (r MembershipRelation) Valid() bool {
	switch r {
	case RelationStudent, RelationTeacher, RelationStaff, RelationGuardian:
		return true
	}
	return false
}

// MembershipModel relates a person to an academy. Student memberships may
// carry a prepaid class-credit balance consumed by enrollments.
type MembershipModel struct {
	MembershipID        uuid.UUID          `gorm:"column:membership_id;type:uuid;default:gen_random_uuid();primaryKey" json:"membership_id"`
	MembershipPersonID  uuid.UUID          `gorm:"column:membership_person_id;type:uuid;not null;index" json:"membership_person_id"`
	MembershipAcademyID uuid.UUID          `gorm:"column:membership_academy_id;type:uuid;not null;index" json:"membership_academy_id"`
	MembershipRelation  MembershipRelation `gorm:"column:membership_relation;type:varchar(20);not null" json:"membership_relation"`
	MembershipIsActive  bool               `gorm:"column:membership_is_active;not null;default:true" json:"membership_is_active"`

	MembershipStartDate time.Time  `gorm:"column:membership_start_date;not null" json:"membership_start_date"`
	MembershipEndDate   *time.Time `gorm:"column:membership_end_date" json:"membership_end_date,omitempty"`

	// NULL means the membership is not credit-based (e.g. unlimited plan).
	MembershipCreditsRemaining *int `gorm:"column:membership_credits_remaining;check:membership_credits_remaining >= 0" json:"membership_credits_remaining,omitempty"`

	MembershipMeta datatypes.JSON `gorm:"column:membership_meta;type:jsonb" json:"membership_meta,omitempty"`

	MembershipCreatedAt time.Time      `gorm:"column:membership_created_at;autoCreateTime" json:"membership_created_at"`
	MembershipUpdatedAt time.Time      `gorm:"column:membership_updated_at;autoUpdateTime" json:"membership_updated_at"`
	MembershipDeletedAt gorm.DeletedAt `gorm:"column:membership_deleted_at;index" json:"-"`
}

func (MembershipModel) TableName() string {
	return "person_academy_memberships"
}
