package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	insModel "academia_backend/internals/features/inscriptions/model"
	insService "academia_backend/internals/features/inscriptions/service"
	"academia_backend/internals/features/reservations/model"
	"academia_backend/internals/mailer"
)

/* =========================================================
   Reservation workflow

   PENDING is the only live state. An approval delegates to
   the enrollment routine; a failed enrollment leaves the
   request PENDING so the admin can retry or reject.
========================================================= */

// ClassInfo is the slice of class state reservation guards need.
type ClassInfo struct {
	ClassID   uuid.UUID
	AcademyID uuid.UUID
	Price     float64
	Currency  string
	IsActive  bool
}

// ReservationStore is the persistence contract. Missing records come back
// as (nil, nil).
type ReservationStore interface {
	FindClass(ctx context.Context, classID uuid.UUID) (*ClassInfo, error)
	HasPendingRequest(ctx context.Context, studentID, classID uuid.UUID) (bool, error)
	HasActiveInscription(ctx context.Context, studentID, classID uuid.UUID) (bool, error)
	Create(ctx context.Context, r *model.ReservationModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReservationModel, error)
	Update(ctx context.Context, r *model.ReservationModel) error
	UserEmail(ctx context.Context, userID uuid.UUID) (string, error)
}

// InscriptionCreator is the enrollment routine as seen from here.
type InscriptionCreator interface {
	Create(ctx context.Context, in insService.CreateInput) (*insService.CreateResult, error)
}

type ReservationService struct {
	Store        ReservationStore
	Inscriptions InscriptionCreator
	Mail         mailer.EmailService
}

func NewReservationService(store ReservationStore, inscriptions InscriptionCreator, mail mailer.EmailService) *ReservationService {
	return &ReservationService{Store: store, Inscriptions: inscriptions, Mail: mail}
}

// CreateReservation files a PENDING request for the student.
func (s *ReservationService) CreateReservation(ctx context.Context, studentID, classID uuid.UUID, notes *string) (*model.ReservationModel, error) {
	if studentID == uuid.Nil || classID == uuid.Nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Missing student or class reference")
	}

	class, err := s.Store.FindClass(ctx, classID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}
	if class == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
	}
	if !class.IsActive {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Class is not active")
	}

	pending, err := s.Store.HasPendingRequest(ctx, studentID, classID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check pending requests")
	}
	if pending {
		return nil, fiber.NewError(fiber.StatusConflict, "A pending request for this class already exists")
	}

	enrolled, err := s.Store.HasActiveInscription(ctx, studentID, classID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing enrollment")
	}
	if enrolled {
		return nil, fiber.NewError(fiber.StatusConflict, "Student is already enrolled in this class")
	}

	r := &model.ReservationModel{
		ReservationStudentUserID: studentID,
		ReservationClassID:       classID,
		ReservationAcademyID:     class.AcademyID,
		ReservationStatus:        model.ReservationPending,
		ReservationStudentNotes:  notes,
	}
	if err := s.Store.Create(ctx, r); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save request")
	}
	return r, nil
}

// PaymentDetails carries the admin's payment decision for an approval.
type PaymentDetails struct {
	PaymentType  insModel.PaymentType
	Amount       *float64
	Currency     *string
	MembershipID *uuid.UUID
}

type ProcessInput struct {
	RequestID uuid.UUID
	AdminID   uuid.UUID

	// AcademyID is the admin's tenant scope. When set, requests of other
	// academies read as missing.
	AcademyID uuid.UUID

	Decision       model.ReservationStatus
	AdminNotes     *string
	PaymentDetails *PaymentDetails
}

// ProcessReservation resolves a PENDING request. Reprocessing a resolved
// request fails loudly rather than pretending success.
func (s *ReservationService) ProcessReservation(ctx context.Context, in ProcessInput) (*model.ReservationModel, error) {
	if in.Decision != model.ReservationApproved && in.Decision != model.ReservationRejected {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Decision must be APPROVED or REJECTED")
	}

	r, err := s.Store.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch request")
	}
	if r == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Reservation request not found")
	}
	if in.AcademyID != uuid.Nil && r.ReservationAcademyID != in.AcademyID {
		return nil, fiber.NewError(fiber.StatusNotFound, "Reservation request not found")
	}
	if r.ReservationStatus.Terminal() {
		return nil, fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Request was already processed (status %s)", r.ReservationStatus))
	}

	if in.Decision == model.ReservationApproved {
		class, cerr := s.Store.FindClass(ctx, r.ReservationClassID)
		if cerr != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
		}
		if class == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		if class.Price > 0 && in.PaymentDetails == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "payment_details are required to approve a priced class")
		}

		details := in.PaymentDetails
		if details == nil {
			details = &PaymentDetails{PaymentType: insModel.Complimentary}
		}

		res, ierr := s.Inscriptions.Create(ctx, insService.CreateInput{
			AdminID:              in.AdminID,
			StudentID:            r.ReservationStudentUserID,
			ClassID:              r.ReservationClassID,
			AcademyID:            in.AcademyID,
			PaymentType:          details.PaymentType,
			Amount:               details.Amount,
			Currency:             details.Currency,
			MembershipID:         details.MembershipID,
			ReservationRequestID: &r.ReservationID,
			AdminNotes:           in.AdminNotes,
		})
		if ierr != nil {
			// Request stays PENDING so the admin can retry or reject.
			return nil, ierr
		}
		r.ReservationInscriptionID = &res.Inscription.InscriptionID
	}

	r.ReservationStatus = in.Decision
	r.ReservationProcessedByAdminID = &in.AdminID
	if in.AdminNotes != nil && strings.TrimSpace(*in.AdminNotes) != "" {
		r.ReservationAdminNotes = in.AdminNotes
	}
	if err := s.Store.Update(ctx, r); err != nil {
		if r.ReservationInscriptionID != nil {
			log.Printf("[ERROR] decision save for request %s failed, inscription %s exists but the request stays PENDING: %v",
				r.ReservationID, *r.ReservationInscriptionID, err)
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save decision")
	}

	s.notifyDecision(ctx, r)
	return r, nil
}

// CancelByUser lets the owning student withdraw a PENDING request.
func (s *ReservationService) CancelByUser(ctx context.Context, requestID, studentID uuid.UUID) (*model.ReservationModel, error) {
	r, err := s.Store.FindByID(ctx, requestID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch request")
	}
	if r == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Reservation request not found")
	}
	if r.ReservationStudentUserID != studentID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Only the requesting student may cancel this request")
	}
	if r.ReservationStatus.Terminal() {
		return nil, fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Request was already processed (status %s)", r.ReservationStatus))
	}

	r.ReservationStatus = model.ReservationCancelledByUser
	if err := s.Store.Update(ctx, r); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save cancellation")
	}
	return r, nil
}

// notifyDecision is best-effort; delivery problems never fail a decision.
func (s *ReservationService) notifyDecision(ctx context.Context, r *model.ReservationModel) {
	if s.Mail == nil {
		return
	}
	email, err := s.Store.UserEmail(ctx, r.ReservationStudentUserID)
	if err != nil || email == "" {
		return
	}

	subject := "Your class reservation was rejected"
	body := "Your reservation request was rejected."
	if r.ReservationStatus == model.ReservationApproved {
		subject = "Your class reservation was approved"
		body = "Your reservation request was approved. Check your enrollments for details."
	}
	if r.ReservationAdminNotes != nil && *r.ReservationAdminNotes != "" {
		body += "\nNotes: " + *r.ReservationAdminNotes
	}
	body += fmt.Sprintf("\nProcessed at %s", time.Now().Format(time.RFC1123))

	if err := s.Mail.Send(mailer.Message{To: email, Subject: subject, Body: body}); err != nil {
		log.Printf("[ERROR] decision mail for request %s failed: %v", r.ReservationID, err)
	}
}
