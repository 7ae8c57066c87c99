package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"academia_backend/internals/features/memberships/model"
)

type AssociateMembershipRequest struct {
	MembershipPersonID         uuid.UUID      `json:"membership_person_id" validate:"required"`
	MembershipRelation         string         `json:"membership_relation" validate:"required,oneof=student teacher staff guardian"`
	MembershipStartDate        *time.Time     `json:"membership_start_date"`
	MembershipEndDate          *time.Time     `json:"membership_end_date"`
	MembershipCreditsRemaining *int           `json:"membership_credits_remaining" validate:"omitempty,min=0"`
	MembershipMeta             datatypes.JSON `json:"membership_meta"`
}

type UpdateMembershipRequest struct {
	MembershipEndDate          *time.Time     `json:"membership_end_date"`
	MembershipIsActive         *bool          `json:"membership_is_active"`
	MembershipCreditsRemaining *int           `json:"membership_credits_remaining" validate:"omitempty,min=0"`
	MembershipMeta             datatypes.JSON `json:"membership_meta"`
}

type MembershipResponse struct {
	MembershipID               uuid.UUID      `json:"membership_id"`
	MembershipPersonID         uuid.UUID      `json:"membership_person_id"`
	MembershipAcademyID        uuid.UUID      `json:"membership_academy_id"`
	MembershipRelation         string         `json:"membership_relation"`
	MembershipIsActive         bool           `json:"membership_is_active"`
	MembershipStartDate        time.Time      `json:"membership_start_date"`
	MembershipEndDate          *time.Time     `json:"membership_end_date,omitempty"`
	MembershipCreditsRemaining *int           `json:"membership_credits_remaining,omitempty"`
	MembershipMeta             datatypes.JSON `json:"membership_meta,omitempty"`
	MembershipCreatedAt        time.Time      `json:"membership_created_at"`
}

func ToMembershipResponse(m model.MembershipModel) MembershipResponse {
	return MembershipResponse{
		MembershipID:               m.MembershipID,
		MembershipPersonID:         m.MembershipPersonID,
		MembershipAcademyID:        m.MembershipAcademyID,
		MembershipRelation:         string(m.MembershipRelation),
		MembershipIsActive:         m.MembershipIsActive,
		MembershipStartDate:        m.MembershipStartDate,
		MembershipEndDate:          m.MembershipEndDate,
		MembershipCreditsRemaining: m.MembershipCreditsRemaining,
		MembershipMeta:             m.MembershipMeta,
		MembershipCreatedAt:        m.MembershipCreatedAt,
	}
}

func ToMembershipResponses(ms []model.MembershipModel) []MembershipResponse {
	out := make([]MembershipResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMembershipResponse(m))
	}
	return out
}
