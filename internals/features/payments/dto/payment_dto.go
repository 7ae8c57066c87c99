package dto

import (
	"time"

	"github.com/google/uuid"

	"academia_backend/internals/features/payments/model"
)

// MidtransNotification is the webhook body the gateway posts. Only the
// fields the ledger reads; the full payload is logged verbatim anyway.
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	GrossAmount       string `json:"gross_amount"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
}

type PaymentResponse struct {
	PaymentID        uuid.UUID  `json:"payment_id"`
	UserID           uuid.UUID  `json:"user_id"`
	AcademyID        uuid.UUID  `json:"academy_id"`
	ItemID           uuid.UUID  `json:"item_id"`
	ItemType         string     `json:"item_type"`
	InscriptionID    *uuid.UUID `json:"inscription_id,omitempty"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	Description      *string    `json:"description,omitempty"`
	GatewayIntentID  *string    `json:"gateway_intent_id,omitempty"`
	GatewayChargeID  *string    `json:"gateway_charge_id,omitempty"`
	CheckoutURL      *string    `json:"checkout_url,omitempty"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
	PaymentCreatedAt time.Time  `json:"created_at"`
}

func ToPaymentResponse(m model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:        m.PaymentID,
		UserID:           m.PaymentUserID,
		AcademyID:        m.PaymentAcademyID,
		ItemID:           m.PaymentItemID,
		ItemType:         m.PaymentItemType,
		InscriptionID:    m.PaymentInscriptionID,
		Amount:           m.PaymentAmount,
		Currency:         m.PaymentCurrency,
		Status:           string(m.PaymentStatus),
		Description:      m.PaymentDescription,
		GatewayIntentID:  m.PaymentGatewayIntentID,
		GatewayChargeID:  m.PaymentGatewayChargeID,
		CheckoutURL:      m.PaymentCheckoutURL,
		ProcessedAt:      m.PaymentProcessedAt,
		PaymentCreatedAt: m.PaymentCreatedAt,
	}
}

func ToPaymentResponses(ms []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPaymentResponse(m))
	}
	return out
}
