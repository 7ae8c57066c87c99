package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PaymentGatewayEvent is an append-only intake log of webhook deliveries.
// Every delivery is recorded before any processing, duplicates included,
// so operators can replay or audit gateway traffic.
type PaymentGatewayEvent struct {
	EventID       uuid.UUID      `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventProvider string         `gorm:"column:event_provider;type:varchar(30);not null;default:'midtrans'" json:"event_provider"`
	EventOrderID  string         `gorm:"column:event_order_id;type:varchar(120);not null;index" json:"event_order_id"`
	EventTxStatus string         `gorm:"column:event_tx_status;type:varchar(40);not null" json:"event_tx_status"`
	EventFraud    *string        `gorm:"column:event_fraud_status;type:varchar(40)" json:"event_fraud_status,omitempty"`
	EventPayload  datatypes.JSON `gorm:"column:event_payload;type:jsonb" json:"event_payload,omitempty"`
	EventError    *string        `gorm:"column:event_error;type:text" json:"event_error,omitempty"`
	EventCreated  time.Time      `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
}

func (PaymentGatewayEvent) TableName() string {
	return "payment_gateway_events"
}
