package dto

import (
	"time"

	"github.com/google/uuid"

	"academia_backend/internals/features/inscriptions/model"
	"academia_backend/internals/features/inscriptions/service"
)

type CreateInscriptionRequest struct {
	StudentID    uuid.UUID  `json:"student_id" validate:"required"`
	ClassID      uuid.UUID  `json:"class_id" validate:"required"`
	PaymentType  string     `json:"payment_type" validate:"required,oneof=PAID_PER_CLASS MEMBERSHIP COMPLIMENTARY"`
	Amount       *float64   `json:"amount" validate:"omitempty,gt=0"`
	Currency     *string    `json:"currency" validate:"omitempty,len=3"`
	MembershipID *uuid.UUID `json:"membership_id"`
	AdminNotes   *string    `json:"admin_notes" validate:"omitempty,max=2000"`
}

type AttendanceRequest struct {
	Status string `json:"status" validate:"required,oneof=ATTENDED NO_SHOW"`
}

type CancelInscriptionRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=2000"`
}

type InscriptionResponse struct {
	InscriptionID        uuid.UUID  `json:"inscription_id"`
	StudentUserID        uuid.UUID  `json:"student_user_id"`
	ClassID              uuid.UUID  `json:"class_id"`
	AcademyID            uuid.UUID  `json:"academy_id"`
	ProcessedByAdminID   uuid.UUID  `json:"processed_by_admin_id"`
	ReservationRequestID *uuid.UUID `json:"reservation_request_id,omitempty"`
	Status               string     `json:"status"`
	PaymentType          string     `json:"payment_type"`
	PaymentID            *uuid.UUID `json:"payment_id,omitempty"`
	MembershipID         *uuid.UUID `json:"membership_id,omitempty"`
	AmountPaid           *float64   `json:"amount_paid,omitempty"`
	Currency             *string    `json:"currency,omitempty"`
	AdminNotes           *string    `json:"admin_notes,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

func ToInscriptionResponse(m model.InscriptionModel) InscriptionResponse {
	return InscriptionResponse{
		InscriptionID:        m.InscriptionID,
		StudentUserID:        m.InscriptionStudentUserID,
		ClassID:              m.InscriptionClassID,
		AcademyID:            m.InscriptionAcademyID,
		ProcessedByAdminID:   m.InscriptionProcessedByAdminID,
		ReservationRequestID: m.InscriptionReservationRequestID,
		Status:               string(m.InscriptionStatus),
		PaymentType:          string(m.InscriptionPaymentType),
		PaymentID:            m.InscriptionPaymentID,
		MembershipID:         m.InscriptionMembershipID,
		AmountPaid:           m.InscriptionAmountPaid,
		Currency:             m.InscriptionCurrency,
		AdminNotes:           m.InscriptionAdminNotes,
		CreatedAt:            m.InscriptionCreatedAt,
	}
}

func ToInscriptionResponses(ms []model.InscriptionModel) []InscriptionResponse {
	out := make([]InscriptionResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToInscriptionResponse(m))
	}
	return out
}

// CreatedInscriptionResponse surfaces the payment-type decision the
// routine actually made, so a caller who sent PAID_PER_CLASS can see a
// free class came back COMPLIMENTARY.
type CreatedInscriptionResponse struct {
	InscriptionResponse
	RequestedPaymentType string  `json:"requested_payment_type"`
	EffectivePaymentType string  `json:"effective_payment_type"`
	CheckoutURL          *string `json:"checkout_url,omitempty"`
}

func ToCreatedInscriptionResponse(res *service.CreateResult) CreatedInscriptionResponse {
	return CreatedInscriptionResponse{
		InscriptionResponse:  ToInscriptionResponse(*res.Inscription),
		RequestedPaymentType: string(res.RequestedPaymentType),
		EffectivePaymentType: string(res.EffectivePaymentType),
		CheckoutURL:          res.CheckoutURL,
	}
}
