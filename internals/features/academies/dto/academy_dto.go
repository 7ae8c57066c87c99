package dto

import (
	"time"

	"github.com/google/uuid"

	"academia_backend/internals/features/academies/model"
)

type CreateAcademyRequest struct {
	AcademyName         string  `json:"academy_name" validate:"required,min=3,max=150"`
	AcademyDescription  *string `json:"academy_description" validate:"omitempty,max=2000"`
	AcademyContactEmail *string `json:"academy_contact_email" validate:"omitempty,email"`
	AcademyContactPhone *string `json:"academy_contact_phone" validate:"omitempty,max=30"`
	AcademyAddress      *string `json:"academy_address" validate:"omitempty,max=500"`
}

type UpdateAcademyRequest struct {
	AcademyName         *string `json:"academy_name" validate:"omitempty,min=3,max=150"`
	AcademyDescription  *string `json:"academy_description" validate:"omitempty,max=2000"`
	AcademyContactEmail *string `json:"academy_contact_email" validate:"omitempty,email"`
	AcademyContactPhone *string `json:"academy_contact_phone" validate:"omitempty,max=30"`
	AcademyAddress      *string `json:"academy_address" validate:"omitempty,max=500"`
	AcademyIsActive     *bool   `json:"academy_is_active"`
}

type AcademyResponse struct {
	AcademyID           uuid.UUID `json:"academy_id"`
	AcademyName         string    `json:"academy_name"`
	AcademyDescription  *string   `json:"academy_description,omitempty"`
	AcademyContactEmail *string   `json:"academy_contact_email,omitempty"`
	AcademyContactPhone *string   `json:"academy_contact_phone,omitempty"`
	AcademyAddress      *string   `json:"academy_address,omitempty"`
	AcademyIsActive     bool      `json:"academy_is_active"`
	AcademyCreatedAt    time.Time `json:"academy_created_at"`
}

func ToAcademyResponse(m model.AcademyModel) AcademyResponse {
	return AcademyResponse{
		AcademyID:           m.AcademyID,
		AcademyName:         m.AcademyName,
		AcademyDescription:  m.AcademyDescription,
		AcademyContactEmail: m.AcademyContactEmail,
		AcademyContactPhone: m.AcademyContactPhone,
		AcademyAddress:      m.AcademyAddress,
		AcademyIsActive:     m.AcademyIsActive,
		AcademyCreatedAt:    m.AcademyCreatedAt,
	}
}

func ToAcademyResponses(ms []model.AcademyModel) []AcademyResponse {
	out := make([]AcademyResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToAcademyResponse(m))
	}
	return out
}
