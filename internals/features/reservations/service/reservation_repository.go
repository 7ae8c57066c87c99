package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "academia_backend/internals/features/classes/model"
	insModel "academia_backend/internals/features/inscriptions/model"
	"academia_backend/internals/features/reservations/model"
	userModel "academia_backend/internals/features/users/user/model"
)

type GormReservationStore struct {
	DB *gorm.DB
}

func NewReservationStore(db *gorm.DB) *GormReservationStore {
	return &GormReservationStore{DB: db}
}

func (s *GormReservationStore) FindClass(ctx context.Context, classID uuid.UUID) (*ClassInfo, error) {
	var class classModel.ClassModel
	err := s.DB.WithContext(ctx).
		Select("class_id", "class_academy_id", "class_price", "class_currency", "class_is_active").
		First(&class, "class_id = ?", classID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ClassInfo{
		ClassID:   class.ClassID,
		AcademyID: class.ClassAcademyID,
		Price:     class.ClassPrice,
		Currency:  class.ClassCurrency,
		IsActive:  class.ClassIsActive,
	}, nil
}

func (s *GormReservationStore) HasPendingRequest(ctx context.Context, studentID, classID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&model.ReservationModel{}).
		Where("reservation_student_user_id = ? AND reservation_class_id = ? AND reservation_status = ?",
			studentID, classID, model.ReservationPending).
		Count(&count).Error
	return count > 0, err
}

func (s *GormReservationStore) HasActiveInscription(ctx context.Context, studentID, classID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&insModel.InscriptionModel{}).
		Where("inscription_student_user_id = ? AND inscription_class_id = ? AND inscription_status IN ?",
			studentID, classID, insModel.ActiveStatuses).
		Count(&count).Error
	return count > 0, err
}

func (s *GormReservationStore) Create(ctx context.Context, r *model.ReservationModel) error {
	return s.DB.WithContext(ctx).Create(r).Error
}

func (s *GormReservationStore) FindByID(ctx context.Context, id uuid.UUID) (*model.ReservationModel, error) {
	var r model.ReservationModel
	err := s.DB.WithContext(ctx).First(&r, "reservation_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *GormReservationStore) Update(ctx context.Context, r *model.ReservationModel) error {
	return s.DB.WithContext(ctx).Model(r).
		Select("reservation_status", "reservation_admin_notes",
			"reservation_processed_by_admin_id", "reservation_inscription_id").
		Updates(r).Error
}

func (s *GormReservationStore) UserEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	var user userModel.User
	err := s.DB.WithContext(ctx).
		Select("user_email").
		First(&user, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return user.UserEmail, nil
}
