package dto

import (
	"time"

	"github.com/google/uuid"

	"academia_backend/internals/features/persons/model"
)

type CreatePersonRequest struct {
	PersonFirstName string     `json:"person_first_name" validate:"required,min=1,max=100"`
	PersonLastName  string     `json:"person_last_name" validate:"required,min=1,max=100"`
	PersonEmail     *string    `json:"person_email" validate:"omitempty,email"`
	PersonPhone     *string    `json:"person_phone" validate:"omitempty,max=30"`
	PersonBirthDate *time.Time `json:"person_birth_date"`
	PersonNotes     *string    `json:"person_notes" validate:"omitempty,max=2000"`
	PersonUserID    *uuid.UUID `json:"person_user_id"`
}

type UpdatePersonRequest struct {
	PersonFirstName *string    `json:"person_first_name" validate:"omitempty,min=1,max=100"`
	PersonLastName  *string    `json:"person_last_name" validate:"omitempty,min=1,max=100"`
	PersonEmail     *string    `json:"person_email" validate:"omitempty,email"`
	PersonPhone     *string    `json:"person_phone" validate:"omitempty,max=30"`
	PersonBirthDate *time.Time `json:"person_birth_date"`
	PersonNotes     *string    `json:"person_notes" validate:"omitempty,max=2000"`
}

type PersonResponse struct {
	PersonID        uuid.UUID  `json:"person_id"`
	PersonFirstName string     `json:"person_first_name"`
	PersonLastName  string     `json:"person_last_name"`
	PersonEmail     *string    `json:"person_email,omitempty"`
	PersonPhone     *string    `json:"person_phone,omitempty"`
	PersonBirthDate *time.Time `json:"person_birth_date,omitempty"`
	PersonNotes     *string    `json:"person_notes,omitempty"`
	PersonUserID    *uuid.UUID `json:"person_user_id,omitempty"`
	PersonCreatedAt time.Time  `json:"person_created_at"`
}

func ToPersonResponse(m model.PersonModel) PersonResponse {
	return PersonResponse{
		PersonID:        m.PersonID,
		PersonFirstName: m.PersonFirstName,
		PersonLastName:  m.PersonLastName,
		PersonEmail:     m.PersonEmail,
		PersonPhone:     m.PersonPhone,
		PersonBirthDate: m.PersonBirthDate,
		PersonNotes:     m.PersonNotes,
		PersonUserID:    m.PersonUserID,
		PersonCreatedAt: m.PersonCreatedAt,
	}
}

func ToPersonResponses(ms []model.PersonModel) []PersonResponse {
	out := make([]PersonResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPersonResponse(m))
	}
	return out
}
