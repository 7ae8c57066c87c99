package dto

import (
	"time"

	"github.com/google/uuid"

	"academia_backend/internals/features/classes/model"
)

type CreateClassRequest struct {
	ClassName          string     `json:"class_name" validate:"required,min=3,max=150"`
	ClassDescription   *string    `json:"class_description" validate:"omitempty,max=2000"`
	ClassTeacherUserID *uuid.UUID `json:"class_teacher_user_id"`
	ClassStartTime     *time.Time `json:"class_start_time"`
	ClassEndTime       *time.Time `json:"class_end_time"`
	ClassPrice         float64    `json:"class_price" validate:"min=0"`
	ClassCurrency      string     `json:"class_currency" validate:"omitempty,len=3"`
	ClassCapacity      int        `json:"class_capacity" validate:"required,min=1"`
}

type UpdateClassRequest struct {
	ClassName          *string    `json:"class_name" validate:"omitempty,min=3,max=150"`
	ClassDescription   *string    `json:"class_description" validate:"omitempty,max=2000"`
	ClassTeacherUserID *uuid.UUID `json:"class_teacher_user_id"`
	ClassStartTime     *time.Time `json:"class_start_time"`
	ClassEndTime       *time.Time `json:"class_end_time"`
	ClassPrice         *float64   `json:"class_price" validate:"omitempty,min=0"`
	ClassCurrency      *string    `json:"class_currency" validate:"omitempty,len=3"`
	ClassCapacity      *int       `json:"class_capacity" validate:"omitempty,min=0"`
	ClassIsActive      *bool      `json:"class_is_active"`
}

type ClassResponse struct {
	ClassID            uuid.UUID  `json:"class_id"`
	ClassAcademyID     uuid.UUID  `json:"class_academy_id"`
	ClassName          string     `json:"class_name"`
	ClassDescription   *string    `json:"class_description,omitempty"`
	ClassTeacherUserID *uuid.UUID `json:"class_teacher_user_id,omitempty"`
	ClassStartTime     *time.Time `json:"class_start_time,omitempty"`
	ClassEndTime       *time.Time `json:"class_end_time,omitempty"`
	ClassPrice         float64    `json:"class_price"`
	ClassCurrency      string     `json:"class_currency"`
	ClassCapacity      int        `json:"class_capacity"`
	ClassEnrolledCount int        `json:"class_enrolled_count"`
	ClassSeatsLeft     int        `json:"class_seats_left"`
	ClassIsActive      bool       `json:"class_is_active"`
	ClassCreatedAt     time.Time  `json:"class_created_at"`
}

func ToClassResponse(m model.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:            m.ClassID,
		ClassAcademyID:     m.ClassAcademyID,
		ClassName:          m.ClassName,
		ClassDescription:   m.ClassDescription,
		ClassTeacherUserID: m.ClassTeacherUserID,
		ClassStartTime:     m.ClassStartTime,
		ClassEndTime:       m.ClassEndTime,
		ClassPrice:         m.ClassPrice,
		ClassCurrency:      m.ClassCurrency,
		ClassCapacity:      m.ClassCapacity,
		ClassEnrolledCount: m.ClassEnrolledCount,
		ClassSeatsLeft:     m.SeatsAvailable(),
		ClassIsActive:      m.ClassIsActive,
		ClassCreatedAt:     m.ClassCreatedAt,
	}
}

func ToClassResponses(ms []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToClassResponse(m))
	}
	return out
}
