package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	classService "academia_backend/internals/features/classes/service"
	"academia_backend/internals/features/inscriptions/model"
)

/* =========================================================
   Enrollment workflow

   Single choke point for seat accounting: every enrollment,
   whether direct or via an approved reservation, goes
   through Create. A claimed seat is either owned by a
   persisted active inscription or given back before the
   error leaves this package.
========================================================= */

// ClassSnapshot is the slice of class state the workflow needs.
type ClassSnapshot struct {
	ClassID   uuid.UUID
	AcademyID uuid.UUID
	Price     float64
	Currency  string
	IsActive  bool
}

// InscriptionStore is the persistence contract. Missing records come back
// as (nil, nil); ErrDuplicateActive marks a storage-level uniqueness hit.
type InscriptionStore interface {
	FindClass(ctx context.Context, classID uuid.UUID) (*ClassSnapshot, error)
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
	HasActiveInscription(ctx context.Context, studentID, classID uuid.UUID) (bool, error)
	Create(ctx context.Context, ins *model.InscriptionModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InscriptionModel, error)
	Update(ctx context.Context, ins *model.InscriptionModel) error
}

// MembershipCredits is the credit-consumption capability of the
// memberships feature.
type MembershipCredits interface {
	UseCredit(ctx context.Context, membershipID uuid.UUID) (bool, error)
	RefundCredit(ctx context.Context, membershipID uuid.UUID) error
}

// PendingPaymentInput asks the payment ledger for a PENDING payment tied
// to a not-yet-persisted inscription.
type PendingPaymentInput struct {
	UserID        uuid.UUID
	AcademyID     uuid.UUID
	InscriptionID uuid.UUID
	ClassID       uuid.UUID
	Amount        float64
	Currency      string
	Description   string
}

type CreatedPayment struct {
	PaymentID   uuid.UUID
	CheckoutURL *string
}

// PaymentLedger is what the workflow needs from the payments feature.
// Wired at route setup; the dependency only points this way.
type PaymentLedger interface {
	CreatePendingInscriptionPayment(ctx context.Context, in PendingPaymentInput) (*CreatedPayment, error)
	MarkRefundDue(ctx context.Context, inscriptionID uuid.UUID) (bool, error)
}

type InscriptionService struct {
	Store    InscriptionStore
	Capacity classService.CapacityService
	Credits  MembershipCredits
	Payments PaymentLedger
}

func NewInscriptionService(store InscriptionStore, capacity classService.CapacityService, credits MembershipCredits) *InscriptionService {
	return &InscriptionService{Store: store, Capacity: capacity, Credits: credits}
}

type CreateInput struct {
	AdminID   uuid.UUID
	StudentID uuid.UUID
	ClassID   uuid.UUID

	// AcademyID is the caller's tenant scope. When set, a class outside
	// it is rejected before anything is claimed or charged.
	AcademyID uuid.UUID

	PaymentType          model.PaymentType
	Amount               *float64
	Currency             *string
	MembershipID         *uuid.UUID
	ReservationRequestID *uuid.UUID
	AdminNotes           *string
}

type CreateResult struct {
	Inscription          *model.InscriptionModel
	RequestedPaymentType model.PaymentType
	EffectivePaymentType model.PaymentType
	CheckoutURL          *string
}

// Create runs the enrollment routine: identity checks, class check,
// duplicate check, seat claim, payment-type branch, persist. Any failure
// after the seat claim releases the seat before the error is returned.
func (s *InscriptionService) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if in.StudentID == uuid.Nil || in.ClassID == uuid.Nil || in.AdminID == uuid.Nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Missing student, class or admin reference")
	}

	for _, id := range []uuid.UUID{in.AdminID, in.StudentID} {
		ok, err := s.Store.UserExists(ctx, id)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to verify user")
		}
		if !ok {
			return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("User %s not found", id))
		}
	}

	class, err := s.Store.FindClass(ctx, in.ClassID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}
	if class == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
	}
	if !class.IsActive {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Class is not active")
	}
	if in.AcademyID != uuid.Nil && class.AcademyID != in.AcademyID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Class belongs to another academy")
	}

	already, err := s.Store.HasActiveInscription(ctx, in.StudentID, in.ClassID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing enrollment")
	}
	if already {
		return nil, fiber.NewError(fiber.StatusConflict, "Student is already enrolled in this class")
	}

	reserved, err := s.Capacity.TryReserveSeat(ctx, in.ClassID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to reserve a seat")
	}
	if !reserved {
		return nil, fiber.NewError(fiber.StatusConflict, "Class is full")
	}

	// Seat is claimed. From here every exit path either persists an
	// active inscription or releases the seat.
	ins := &model.InscriptionModel{
		InscriptionID:                   uuid.New(),
		InscriptionStudentUserID:        in.StudentID,
		InscriptionClassID:              in.ClassID,
		InscriptionAcademyID:            class.AcademyID,
		InscriptionProcessedByAdminID:   in.AdminID,
		InscriptionReservationRequestID: in.ReservationRequestID,
		InscriptionPaymentType:          in.PaymentType,
		InscriptionStatus:               model.InscriptionConfirmed,
		InscriptionAdminNotes:           in.AdminNotes,
	}

	effective := in.PaymentType
	var checkoutURL *string
	var usedMembership *uuid.UUID

	switch in.PaymentType {
	case model.PaidPerClass:
		if class.Price <= 0 {
			log.Printf("[Inscription] class %s is free, reclassifying PAID_PER_CLASS as COMPLIMENTARY for student %s",
				in.ClassID, in.StudentID)
			effective = model.Complimentary
			ins.InscriptionPaymentType = model.Complimentary
		} else if in.Amount != nil {
			if *in.Amount <= 0 {
				s.releaseSeat(ctx, in.ClassID)
				return nil, fiber.NewError(fiber.StatusBadRequest, "Manual amount must be greater than zero")
			}
			amount := *in.Amount
			currency := class.Currency
			if in.Currency != nil && *in.Currency != "" {
				currency = strings.ToUpper(*in.Currency)
			}
			ins.InscriptionAmountPaid = &amount
			ins.InscriptionCurrency = &currency
		} else {
			if s.Payments == nil {
				s.releaseSeat(ctx, in.ClassID)
				return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Payment processing is not available")
			}
			payment, perr := s.Payments.CreatePendingInscriptionPayment(ctx, PendingPaymentInput{
				UserID:        in.StudentID,
				AcademyID:     class.AcademyID,
				InscriptionID: ins.InscriptionID,
				ClassID:       in.ClassID,
				Amount:        class.Price,
				Currency:      class.Currency,
				Description:   fmt.Sprintf("Class enrollment %s", in.ClassID),
			})
			if perr != nil {
				s.releaseSeat(ctx, in.ClassID)
				return nil, perr
			}
			ins.InscriptionPaymentID = &payment.PaymentID
			ins.InscriptionStatus = model.InscriptionPendingPayment
			checkoutURL = payment.CheckoutURL
		}

	case model.Membership:
		if in.MembershipID == nil || *in.MembershipID == uuid.Nil {
			s.releaseSeat(ctx, in.ClassID)
			return nil, fiber.NewError(fiber.StatusBadRequest, "membership_id is required for MEMBERSHIP enrollments")
		}
		ok, cerr := s.Credits.UseCredit(ctx, *in.MembershipID)
		if cerr != nil {
			s.releaseSeat(ctx, in.ClassID)
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to charge membership")
		}
		if !ok {
			s.releaseSeat(ctx, in.ClassID)
			return nil, fiber.NewError(fiber.StatusConflict, "Membership is not usable or has no remaining credits")
		}
		ins.InscriptionMembershipID = in.MembershipID
		usedMembership = in.MembershipID

	case model.Complimentary:
		// Nothing to charge.

	default:
		s.releaseSeat(ctx, in.ClassID)
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Unsupported payment type %q", in.PaymentType))
	}

	if err := s.Store.Create(ctx, ins); err != nil {
		s.releaseSeat(ctx, in.ClassID)
		if usedMembership != nil {
			if rerr := s.Credits.RefundCredit(ctx, *usedMembership); rerr != nil {
				log.Printf("[ERROR] credit refund for membership %s failed after persist error: %v", *usedMembership, rerr)
			}
		}
		if errors.Is(err, ErrDuplicateActive) {
			return nil, fiber.NewError(fiber.StatusConflict, "Student is already enrolled in this class")
		}
		if ins.InscriptionPaymentID != nil {
			log.Printf("[ERROR] inscription persist failed, payment %s is now orphaned: %v", *ins.InscriptionPaymentID, err)
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save enrollment")
	}

	return &CreateResult{
		Inscription:          ins,
		RequestedPaymentType: in.PaymentType,
		EffectivePaymentType: effective,
		CheckoutURL:          checkoutURL,
	}, nil
}

// AdminCancel releases the seat, marks the record cancelled and appends an
// audit note. A completed per-class payment gets a refund flag; refund
// handling itself never blocks the cancellation. Records outside the
// caller's academy read as missing.
func (s *InscriptionService) AdminCancel(ctx context.Context, inscriptionID, academyID, adminID uuid.UUID, reason *string) (*model.InscriptionModel, error) {
	ins, err := s.Store.FindByID(ctx, inscriptionID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollment")
	}
	if ins == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Enrollment not found")
	}
	if academyID != uuid.Nil && ins.InscriptionAcademyID != academyID {
		return nil, fiber.NewError(fiber.StatusNotFound, "Enrollment not found")
	}
	if ins.InscriptionStatus == model.InscriptionCancelledByAdmin {
		return nil, fiber.NewError(fiber.StatusConflict, "Enrollment is already cancelled")
	}

	released, err := s.Capacity.ReleaseSeat(ctx, ins.InscriptionClassID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to release the seat")
	}
	if !released {
		log.Printf("[WARN] cancel of inscription %s released no seat on class %s", ins.InscriptionID, ins.InscriptionClassID)
	}

	if ins.InscriptionPaymentType == model.Membership && ins.InscriptionMembershipID != nil {
		if rerr := s.Credits.RefundCredit(ctx, *ins.InscriptionMembershipID); rerr != nil {
			log.Printf("[ERROR] credit refund for membership %s failed on cancel: %v", *ins.InscriptionMembershipID, rerr)
		}
	}

	if ins.InscriptionPaymentType == model.PaidPerClass && s.Payments != nil {
		refundDue, rerr := s.Payments.MarkRefundDue(ctx, ins.InscriptionID)
		if rerr != nil {
			log.Printf("[ERROR] refund flag for inscription %s failed: %v", ins.InscriptionID, rerr)
		} else if refundDue {
			log.Printf("[WARN] inscription %s cancelled with a completed payment, refund required", ins.InscriptionID)
		}
	}

	note := fmt.Sprintf("Cancelled by admin %s at %s", adminID, time.Now().UTC().Format(time.RFC3339))
	if reason != nil && strings.TrimSpace(*reason) != "" {
		note += ": " + strings.TrimSpace(*reason)
	}
	appendNote(ins, note)

	ins.InscriptionStatus = model.InscriptionCancelledByAdmin
	if err := s.Store.Update(ctx, ins); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save cancellation")
	}
	return ins, nil
}

// UpdateAttendance moves a settled enrollment to ATTENDED or NO_SHOW.
// Records outside the caller's academy read as missing.
func (s *InscriptionService) UpdateAttendance(ctx context.Context, inscriptionID, academyID uuid.UUID, status model.InscriptionStatus) (*model.InscriptionModel, error) {
	if status != model.InscriptionAttended && status != model.InscriptionNoShow {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Attendance status must be ATTENDED or NO_SHOW")
	}

	ins, err := s.Store.FindByID(ctx, inscriptionID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollment")
	}
	if ins == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Enrollment not found")
	}
	if academyID != uuid.Nil && ins.InscriptionAcademyID != academyID {
		return nil, fiber.NewError(fiber.StatusNotFound, "Enrollment not found")
	}
	if ins.InscriptionStatus == model.InscriptionCancelledByAdmin {
		return nil, fiber.NewError(fiber.StatusConflict, "Enrollment is cancelled")
	}
	if ins.InscriptionStatus == model.InscriptionPendingPayment {
		return nil, fiber.NewError(fiber.StatusConflict, "Payment is not settled yet")
	}

	ins.InscriptionStatus = status
	if err := s.Store.Update(ctx, ins); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save attendance")
	}
	return ins, nil
}

// ConfirmPaymentAndUpdateStatus is the payment ledger's callback. Anything
// other than PENDING_PAYMENT is returned untouched; gateways redeliver and
// operators replay, so this must stay a no-op on repeat.
func (s *InscriptionService) ConfirmPaymentAndUpdateStatus(ctx context.Context, inscriptionID, paymentID uuid.UUID) (*model.InscriptionModel, error) {
	ins, err := s.Store.FindByID(ctx, inscriptionID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollment")
	}
	if ins == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Enrollment not found")
	}
	if ins.InscriptionStatus != model.InscriptionPendingPayment {
		log.Printf("[Inscription] confirm on %s ignored, status is %s", inscriptionID, ins.InscriptionStatus)
		return ins, nil
	}

	ins.InscriptionStatus = model.InscriptionConfirmed
	ins.InscriptionPaymentID = &paymentID
	if err := s.Store.Update(ctx, ins); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to confirm enrollment")
	}
	return ins, nil
}

func (s *InscriptionService) releaseSeat(ctx context.Context, classID uuid.UUID) {
	if _, err := s.Capacity.ReleaseSeat(ctx, classID); err != nil {
		log.Printf("[ERROR] seat release on class %s failed during rollback: %v", classID, err)
	}
}

func appendNote(ins *model.InscriptionModel, note string) {
	if ins.InscriptionAdminNotes == nil || strings.TrimSpace(*ins.InscriptionAdminNotes) == "" {
		ins.InscriptionAdminNotes = &note
		return
	}
	combined := *ins.InscriptionAdminNotes + "\n" + note
	ins.InscriptionAdminNotes = &combined
}
