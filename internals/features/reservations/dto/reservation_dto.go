package dto

import (
	"time"

	"github.com/google/uuid"

	"academia_backend/internals/features/reservations/model"
)

type CreateReservationRequest struct {
	ClassID      uuid.UUID `json:"class_id" validate:"required"`
	StudentNotes *string   `json:"student_notes" validate:"omitempty,max=2000"`
}

type PaymentDetailsRequest struct {
	PaymentType  string     `json:"payment_type" validate:"required,oneof=PAID_PER_CLASS MEMBERSHIP COMPLIMENTARY"`
	Amount       *float64   `json:"amount" validate:"omitempty,gt=0"`
	Currency     *string    `json:"currency" validate:"omitempty,len=3"`
	MembershipID *uuid.UUID `json:"membership_id"`
}

type ProcessReservationRequest struct {
	Decision       string                 `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	AdminNotes     *string                `json:"admin_notes" validate:"omitempty,max=2000"`
	PaymentDetails *PaymentDetailsRequest `json:"payment_details" validate:"omitempty"`
}

type ReservationResponse struct {
	ReservationID      uuid.UUID  `json:"reservation_id"`
	StudentUserID      uuid.UUID  `json:"student_user_id"`
	ClassID            uuid.UUID  `json:"class_id"`
	AcademyID          uuid.UUID  `json:"academy_id"`
	Status             string     `json:"status"`
	StudentNotes       *string    `json:"student_notes,omitempty"`
	AdminNotes         *string    `json:"admin_notes,omitempty"`
	ProcessedByAdminID *uuid.UUID `json:"processed_by_admin_id,omitempty"`
	InscriptionID      *uuid.UUID `json:"inscription_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func ToReservationResponse(m model.ReservationModel) ReservationResponse {
	return ReservationResponse{
		ReservationID:      m.ReservationID,
		StudentUserID:      m.ReservationStudentUserID,
		ClassID:            m.ReservationClassID,
		AcademyID:          m.ReservationAcademyID,
		Status:             string(m.ReservationStatus),
		StudentNotes:       m.ReservationStudentNotes,
		AdminNotes:         m.ReservationAdminNotes,
		ProcessedByAdminID: m.ReservationProcessedByAdminID,
		InscriptionID:      m.ReservationInscriptionID,
		CreatedAt:          m.ReservationCreatedAt,
	}
}

func ToReservationResponses(ms []model.ReservationModel) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToReservationResponse(m))
	}
	return out
}
