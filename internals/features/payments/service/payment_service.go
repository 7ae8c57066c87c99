package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	insService "academia_backend/internals/features/inscriptions/service"
	"academia_backend/internals/features/payments/dto"
	"academia_backend/internals/features/payments/model"
)

/* =========================================================
   Payment ledger

   Gateway deliveries are recorded first, processed second,
   and tolerated in duplicate: a repeated success event for
   a COMPLETED payment is a logged no-op. Once a payment is
   COMPLETED it stays COMPLETED even when the enrollment
   confirmation behind it fails; that failure lands on the
   event row for the reconciliation operator.
========================================================= */

// InscriptionConfirmer is the enrollment-side callback.
type InscriptionConfirmer interface {
	ConfirmPayment(ctx context.Context, inscriptionID, paymentID uuid.UUID) error
}

// ConfirmerFunc adapts a plain function to InscriptionConfirmer.
type ConfirmerFunc func(ctx context.Context, inscriptionID, paymentID uuid.UUID) error

func (f ConfirmerFunc) ConfirmPayment(ctx context.Context, inscriptionID, paymentID uuid.UUID) error {
	return f(ctx, inscriptionID, paymentID)
}

type PaymentService struct {
	DB           *gorm.DB
	Snap         SnapGateway
	Inscriptions InscriptionConfirmer
}

func NewPaymentService(db *gorm.DB, gateway SnapGateway) *PaymentService {
	return &PaymentService{DB: db, Snap: gateway}
}

// CreatePendingInscriptionPayment opens a PENDING ledger entry and a Snap
// checkout for it. The payment row is removed again when the gateway call
// fails; a ledger entry without a checkout is useless to the student.
func (s *PaymentService) CreatePendingInscriptionPayment(ctx context.Context, in insService.PendingPaymentInput) (*insService.CreatedPayment, error) {
	if in.Amount <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Payment amount must be greater than zero")
	}

	description := in.Description
	payment := model.PaymentModel{
		PaymentID:            uuid.New(),
		PaymentUserID:        in.UserID,
		PaymentAcademyID:     in.AcademyID,
		PaymentItemID:        in.InscriptionID,
		PaymentItemType:      "inscription",
		PaymentInscriptionID: &in.InscriptionID,
		PaymentAmount:        in.Amount,
		PaymentCurrency:      in.Currency,
		PaymentStatus:        model.PaymentPending,
		PaymentDescription:   &description,
	}
	if err := s.DB.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create payment")
	}

	var checkoutURL *string
	if s.Snap != nil {
		req := &snap.Request{
			TransactionDetails: midtrans.TransactionDetails{
				OrderID:  payment.PaymentID.String(),
				GrossAmt: int64(math.Round(in.Amount)),
			},
			Items: &[]midtrans.ItemDetails{{
				ID:    in.ClassID.String(),
				Name:  description,
				Price: int64(math.Round(in.Amount)),
				Qty:   1,
			}},
		}
		resp, merr := s.Snap.CreateTransaction(req)
		if merr != nil {
			// No checkout means no way to pay; drop the dead row.
			if derr := s.DB.WithContext(ctx).Unscoped().Delete(&payment).Error; derr != nil {
				log.Printf("[ERROR] orphan payment %s cleanup failed: %v", payment.PaymentID, derr)
			}
			log.Printf("[ERROR] snap transaction for payment %s failed: %v", payment.PaymentID, merr)
			return nil, fiber.NewError(fiber.StatusBadGateway, "Payment gateway rejected the transaction")
		}

		updates := map[string]any{
			"payment_gateway_intent_id": resp.Token,
			"payment_checkout_url":      resp.RedirectURL,
		}
		if err := s.DB.WithContext(ctx).Model(&payment).Updates(updates).Error; err != nil {
			log.Printf("[ERROR] storing checkout for payment %s failed: %v", payment.PaymentID, err)
		}
		checkoutURL = &resp.RedirectURL
	}

	return &insService.CreatedPayment{
		PaymentID:   payment.PaymentID,
		CheckoutURL: checkoutURL,
	}, nil
}

// MarkRefundDue flags the completed payment of a cancelled enrollment.
// Returns whether such a payment existed.
func (s *PaymentService) MarkRefundDue(ctx context.Context, inscriptionID uuid.UUID) (bool, error) {
	var payment model.PaymentModel
	err := s.DB.WithContext(ctx).
		First(&payment, "payment_inscription_id = ? AND payment_status = ?", inscriptionID, model.PaymentCompleted).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	meta := mergeMeta(payment.PaymentMeta, map[string]any{
		"refund_due":          true,
		"refund_requested_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err := s.DB.WithContext(ctx).Model(&payment).Update("payment_meta", meta).Error; err != nil {
		return true, err
	}
	log.Printf("[Payment] refund flagged on payment %s for inscription %s", payment.PaymentID, inscriptionID)
	return true, nil
}

// HandleGatewayEvent is the webhook entry point. The delivery is logged
// before any processing; unknown statuses are kept but ignored.
func (s *PaymentService) HandleGatewayEvent(ctx context.Context, n dto.MidtransNotification, rawBody []byte) error {
	event := model.PaymentGatewayEvent{
		EventProvider: "midtrans",
		EventOrderID:  n.OrderID,
		EventTxStatus: n.TransactionStatus,
		EventPayload:  datatypes.JSON(rawBody),
	}
	if n.FraudStatus != "" {
		fraud := n.FraudStatus
		event.EventFraud = &fraud
	}
	if err := s.DB.WithContext(ctx).Create(&event).Error; err != nil {
		log.Printf("[ERROR] gateway event intake failed for order %s: %v", n.OrderID, err)
	}

	switch MapMidtransStatus(n.TransactionStatus, n.FraudStatus) {
	case OutcomeSuccess:
		s.processSuccessfulPayment(ctx, event.EventID, n)
	case OutcomePending:
		log.Printf("[Payment] order %s still pending at the gateway", n.OrderID)
	case OutcomeFailed:
		s.processFailedPayment(ctx, n.OrderID, model.PaymentFailed, fmt.Sprintf("gateway status %s", n.TransactionStatus))
	case OutcomeCancelled:
		s.processFailedPayment(ctx, n.OrderID, model.PaymentCancelled, "cancelled at the gateway")
	case OutcomeExpired:
		s.processFailedPayment(ctx, n.OrderID, model.PaymentCancelled, "checkout expired")
	default:
		log.Printf("[Payment] ignoring unknown transaction status %q for order %s", n.TransactionStatus, n.OrderID)
	}
	return nil
}

// processSuccessfulPayment is idempotent against gateway redelivery. The
// COMPLETED state persists even when the enrollment confirmation fails;
// that failure is recorded on the event row instead.
func (s *PaymentService) processSuccessfulPayment(ctx context.Context, eventID uuid.UUID, n dto.MidtransNotification) {
	paymentID, err := uuid.Parse(n.OrderID)
	if err != nil {
		s.recordEventError(ctx, eventID, fmt.Sprintf("order id %q is not a payment id", n.OrderID))
		return
	}

	var payment model.PaymentModel
	if err := s.DB.WithContext(ctx).First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Payment] success event for unknown payment %s, ignoring", paymentID)
			return
		}
		s.recordEventError(ctx, eventID, err.Error())
		return
	}
	if payment.PaymentStatus == model.PaymentCompleted {
		log.Printf("[Payment] duplicate success event for payment %s, ignoring", paymentID)
		return
	}

	now := time.Now()
	updates := map[string]any{
		"payment_status":       model.PaymentCompleted,
		"payment_processed_at": now,
	}
	if n.TransactionID != "" {
		updates["payment_gateway_charge_id"] = n.TransactionID
	}
	if err := s.DB.WithContext(ctx).Model(&payment).Updates(updates).Error; err != nil {
		s.recordEventError(ctx, eventID, err.Error())
		return
	}

	inscriptionID := payment.PaymentItemID
	if payment.PaymentInscriptionID != nil {
		inscriptionID = *payment.PaymentInscriptionID
	}
	if s.Inscriptions == nil {
		s.recordEventError(ctx, eventID, "no inscription confirmer wired")
		return
	}
	if err := s.Inscriptions.ConfirmPayment(ctx, inscriptionID, payment.PaymentID); err != nil {
		log.Printf("[ERROR] payment %s completed but enrollment %s confirmation failed: %v",
			payment.PaymentID, inscriptionID, err)
		s.recordEventError(ctx, eventID, fmt.Sprintf("enrollment confirmation failed: %v", err))
	}
}

// processFailedPayment is a no-op once the payment is COMPLETED: a late
// failure notice never un-completes money already settled.
func (s *PaymentService) processFailedPayment(ctx context.Context, orderID string, to model.PaymentStatus, reason string) {
	paymentID, err := uuid.Parse(orderID)
	if err != nil {
		log.Printf("[Payment] failure event with bad order id %q, ignoring", orderID)
		return
	}

	var payment model.PaymentModel
	if err := s.DB.WithContext(ctx).First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Payment] failure event for unknown payment %s, ignoring", paymentID)
			return
		}
		log.Printf("[ERROR] fetching payment %s failed: %v", paymentID, err)
		return
	}
	if payment.PaymentStatus == model.PaymentCompleted {
		log.Printf("[Payment] failure event for completed payment %s, ignoring", paymentID)
		return
	}

	meta := mergeMeta(payment.PaymentMeta, map[string]any{"failure_reason": reason})
	err = s.DB.WithContext(ctx).Model(&payment).Updates(map[string]any{
		"payment_status": to,
		"payment_meta":   meta,
	}).Error
	if err != nil {
		log.Printf("[ERROR] marking payment %s as %s failed: %v", paymentID, to, err)
	}
}

// MarkRefunded is the manual operator action after money went back.
func (s *PaymentService) MarkRefunded(ctx context.Context, paymentID uuid.UUID) (*model.PaymentModel, error) {
	var payment model.PaymentModel
	if err := s.DB.WithContext(ctx).First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}
	if payment.PaymentStatus != model.PaymentCompleted {
		return nil, fiber.NewError(fiber.StatusConflict, "Only completed payments can be refunded")
	}

	meta := mergeMeta(payment.PaymentMeta, map[string]any{
		"refunded_at": time.Now().UTC().Format(time.RFC3339),
	})
	err := s.DB.WithContext(ctx).Model(&payment).Updates(map[string]any{
		"payment_status": model.PaymentRefunded,
		"payment_meta":   meta,
	}).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to mark refund")
	}
	payment.PaymentStatus = model.PaymentRefunded
	return &payment, nil
}

// CancelPending voids a payment the student never completed.
func (s *PaymentService) CancelPending(ctx context.Context, paymentID uuid.UUID) (*model.PaymentModel, error) {
	var payment model.PaymentModel
	if err := s.DB.WithContext(ctx).First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}
	if payment.PaymentStatus != model.PaymentPending {
		return nil, fiber.NewError(fiber.StatusConflict, "Only pending payments can be cancelled")
	}

	if err := s.DB.WithContext(ctx).Model(&payment).Update("payment_status", model.PaymentCancelled).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to cancel payment")
	}
	payment.PaymentStatus = model.PaymentCancelled
	return &payment, nil
}

func (s *PaymentService) recordEventError(ctx context.Context, eventID uuid.UUID, msg string) {
	log.Printf("[ERROR] gateway event %s: %s", eventID, msg)
	err := s.DB.WithContext(ctx).Model(&model.PaymentGatewayEvent{}).
		Where("event_id = ?", eventID).
		Update("event_error", msg).Error
	if err != nil {
		log.Printf("[ERROR] writing error to event %s failed: %v", eventID, err)
	}
}

func mergeMeta(existing datatypes.JSON, add map[string]any) datatypes.JSON {
	merged := map[string]any{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &merged); err != nil {
			merged = map[string]any{}
		}
	}
	for k, v := range add {
		merged[k] = v
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return existing
	}
	return datatypes.JSON(out)
}
