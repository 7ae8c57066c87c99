package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	classModel "academia_backend/internals/features/classes/model"
	"academia_backend/internals/features/inscriptions/model"
	userModel "academia_backend/internals/features/users/user/model"
)

// ErrDuplicateActive marks a storage-level uniqueness hit on the active
// (student, class) pair. The application check runs first; this is the
// backstop for two creations racing past it.
var ErrDuplicateActive = errors.New("duplicate active inscription")

type GormInscriptionStore struct {
	DB *gorm.DB
}

func NewInscriptionStore(db *gorm.DB) *GormInscriptionStore {
	return &GormInscriptionStore{DB: db}
}

func (s *GormInscriptionStore) FindClass(ctx context.Context, classID uuid.UUID) (*ClassSnapshot, error) {
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
	return &ClassSnapshot{
		ClassID:   class.ClassID,
		AcademyID: class.ClassAcademyID,
		Price:     class.ClassPrice,
		Currency:  class.ClassCurrency,
		IsActive:  class.ClassIsActive,
	}, nil
}

func (s *GormInscriptionStore) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&userModel.User{}).
		Where("user_id = ? AND user_is_active = TRUE", userID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormInscriptionStore) HasActiveInscription(ctx context.Context, studentID, classID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&model.InscriptionModel{}).
		Where("inscription_student_user_id = ? AND inscription_class_id = ? AND inscription_status IN ?",
			studentID, classID, model.ActiveStatuses).
		Count(&count).Error
	return count > 0, err
}

func (s *GormInscriptionStore) Create(ctx context.Context, ins *model.InscriptionModel) error {
	if err := s.DB.WithContext(ctx).Create(ins).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateActive
		}
		return err
	}
	return nil
}

func (s *GormInscriptionStore) FindByID(ctx context.Context, id uuid.UUID) (*model.InscriptionModel, error) {
	var ins model.InscriptionModel
	err := s.DB.WithContext(ctx).First(&ins, "inscription_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ins, nil
}

func (s *GormInscriptionStore) Update(ctx context.Context, ins *model.InscriptionModel) error {
	return s.DB.WithContext(ctx).Model(ins).
		Select("inscription_status", "inscription_payment_id", "inscription_admin_notes").
		Updates(ins).Error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
