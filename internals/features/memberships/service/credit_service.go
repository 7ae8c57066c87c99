package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/features/memberships/model"
)

/* =========================================================
   Membership credit consumption

   The enrollment routine charges one class credit per seat.
   The decrement has to be a single conditional UPDATE so two
   concurrent enrollments cannot both spend the last credit.
========================================================= */

type CreditService struct {
	DB *gorm.DB
}

func NewCreditService(db *gorm.DB) *CreditService {
	return &CreditService{DB: db}
}

// UseCredit spends one credit on an active, non-expired membership.
// Memberships without a credit balance (NULL) are usable without decrement.
// Returns false when the membership is missing, inactive, expired, or out
// of credits. False is an expected outcome, not an error.
func (s *CreditService) UseCredit(ctx context.Context, membershipID uuid.UUID) (bool, error) {
	if membershipID == uuid.Nil {
		return false, nil
	}

	var m model.MembershipModel
	err := s.DB.WithContext(ctx).
		Select("membership_id", "membership_is_active", "membership_end_date", "membership_credits_remaining").
		First(&m, "membership_id = ?", membershipID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Printf("[Membership] credit check: membership %s not found", membershipID)
			return false, nil
		}
		return false, err
	}

	now := time.Now()
	if !m.MembershipIsActive {
		return false, nil
	}
	if m.MembershipEndDate != nil && m.MembershipEndDate.Before(now) {
		return false, nil
	}
	if m.MembershipCreditsRemaining == nil {
		// Unlimited plan, nothing to decrement.
		return true, nil
	}

	res := s.DB.WithContext(ctx).Model(&model.MembershipModel{}).
		Where("membership_id = ? AND membership_is_active = TRUE AND membership_credits_remaining > 0", membershipID).
		UpdateColumn("membership_credits_remaining", gorm.Expr("membership_credits_remaining - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RefundCredit gives a credit back after a cancellation. No-op for
// unlimited memberships.
func (s *CreditService) RefundCredit(ctx context.Context, membershipID uuid.UUID) error {
	if membershipID == uuid.Nil {
		return nil
	}
	res := s.DB.WithContext(ctx).Model(&model.MembershipModel{}).
		Where("membership_id = ? AND membership_credits_remaining IS NOT NULL", membershipID).
		UpdateColumn("membership_credits_remaining", gorm.Expr("membership_credits_remaining + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		log.Printf("[Membership] refunded 1 credit to membership %s", membershipID)
	}
	return nil
}
