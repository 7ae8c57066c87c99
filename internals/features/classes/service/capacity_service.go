package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/features/classes/model"
)

/* =========================================================
   Capacity ledger

   The seat counter is the only field in the system needing
   atomic mutation. Both operations are a single conditional
   UPDATE; RowsAffected tells whether the claim/release took
   effect. No read-then-write window, so N concurrent
   reservers against K free seats get at most K successes.
========================================================= */

// CapacityService is the seat accounting contract. False results are
// expected outcomes (full, inactive, missing, already at zero), not errors.
type CapacityService interface {
	TryReserveSeat(ctx context.Context, classID uuid.UUID) (bool, error)
	ReleaseSeat(ctx context.Context, classID uuid.UUID) (bool, error)
}

type GormCapacityService struct {
	DB *gorm.DB
}

func NewCapacityService(db *gorm.DB) *GormCapacityService {
	return &GormCapacityService{DB: db}
}

// TryReserveSeat claims one seat when the class is active and not full.
func (s *GormCapacityService) TryReserveSeat(ctx context.Context, classID uuid.UUID) (bool, error) {
	if classID == uuid.Nil {
		return false, nil
	}

	res := s.DB.WithContext(ctx).Model(&model.ClassModel{}).
		Where("class_id = ? AND class_is_active = TRUE AND class_enrolled_count < class_capacity", classID).
		UpdateColumn("class_enrolled_count", gorm.Expr("class_enrolled_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected != 1 {
		// Full, inactive, or gone. The caller decides what that means.
		return false, nil
	}
	return true, nil
}

// ReleaseSeat gives one seat back, never dropping below zero. Releasing at
// zero is a no-op returning false.
func (s *GormCapacityService) ReleaseSeat(ctx context.Context, classID uuid.UUID) (bool, error) {
	if classID == uuid.Nil {
		return false, nil
	}

	res := s.DB.WithContext(ctx).Model(&model.ClassModel{}).
		Where("class_id = ? AND class_enrolled_count > 0", classID).
		UpdateColumn("class_enrolled_count", gorm.Expr("GREATEST(class_enrolled_count - 1, 0)"))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected != 1 {
		log.Printf("[Capacity] release on class %s had no effect (already zero or missing)", classID)
		return false, nil
	}
	return true, nil
}
