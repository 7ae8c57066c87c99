package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentModel is one tracked monetary obligation. The inscription
// back-link is a first class column so reconciliation never has to dig
// through the meta payload.
type PaymentModel struct {
	PaymentID        uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`
	PaymentUserID    uuid.UUID `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`
	PaymentAcademyID uuid.UUID `gorm:"column:payment_academy_id;type:uuid;not null;index" json:"payment_academy_id"`

	PaymentItemID   uuid.UUID `gorm:"column:payment_item_id;type:uuid;not null;index" json:"payment_item_id"`
	PaymentItemType string    `gorm:"column:payment_item_type;type:varchar(40);not null;default:'inscription'" json:"payment_item_type"`

	PaymentInscriptionID *uuid.UUID `gorm:"column:payment_inscription_id;type:uuid;index" json:"payment_inscription_id,omitempty"`

	PaymentAmount   float64       `gorm:"column:payment_amount;type:numeric(12,2);not null;check:payment_amount > 0" json:"payment_amount"`
	PaymentCurrency string        `gorm:"column:payment_currency;type:varchar(3);not null;default:'USD'" json:"payment_currency"`
	PaymentStatus   PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:'PENDING';index" json:"payment_status"`

	PaymentDescription *string `gorm:"column:payment_description;type:text" json:"payment_description,omitempty"`

	PaymentGatewayIntentID *string `gorm:"column:payment_gateway_intent_id;type:varchar(120);index" json:"payment_gateway_intent_id,omitempty"`
	PaymentGatewayChargeID *string `gorm:"column:payment_gateway_charge_id;type:varchar(120)" json:"payment_gateway_charge_id,omitempty"`
	PaymentCheckoutURL     *string `gorm:"column:payment_checkout_url;type:text" json:"payment_checkout_url,omitempty"`

	PaymentMeta datatypes.JSON `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	PaymentProcessedAt *time.Time `gorm:"column:payment_processed_at" json:"payment_processed_at,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
