package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/features/academies/dto"
	"academia_backend/internals/features/academies/model"
	helper "academia_backend/internals/helpers"
)

type AcademyController struct {
	DB *gorm.DB
}

func NewAcademyController(db *gorm.DB) *AcademyController {
	return &AcademyController{DB: db}
}

var validate = validator.New()

// POST /api/o/academies
func (ctrl *AcademyController) Create(c *fiber.Ctx) error {
	var req dto.CreateAcademyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	academy := model.AcademyModel{
		AcademyName:         strings.TrimSpace(req.AcademyName),
		AcademyDescription:  req.AcademyDescription,
		AcademyContactEmail: req.AcademyContactEmail,
		AcademyContactPhone: req.AcademyContactPhone,
		AcademyAddress:      req.AcademyAddress,
		AcademyIsActive:     true,
	}
	if err := ctrl.DB.Create(&academy).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create academy")
	}

	return helper.JsonCreated(c, "Academy created", dto.ToAcademyResponse(academy))
}

// GET /api/o/academies
func (ctrl *AcademyController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.AcademyModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("academy_name ILIKE ?", "%"+search+"%")
	}
	if active := strings.TrimSpace(c.Query("is_active")); active != "" {
		q = q.Where("academy_is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count academies")
	}

	var academies []model.AcademyModel
	if err := q.Order("academy_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&academies).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch academies")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Academies fetched", dto.ToAcademyResponses(academies), pagination)
}

// GET /api/o/academies/:id
func (ctrl *AcademyController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid academy id")
	}

	var academy model.AcademyModel
	if err := ctrl.DB.First(&academy, "academy_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Academy not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch academy")
	}

	return helper.JsonOK(c, "Academy fetched", dto.ToAcademyResponse(academy))
}

// PUT /api/o/academies/:id
func (ctrl *AcademyController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid academy id")
	}

	var req dto.UpdateAcademyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var academy model.AcademyModel
	if err := ctrl.DB.First(&academy, "academy_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Academy not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch academy")
	}

	updates := map[string]any{}
	if req.AcademyName != nil {
		updates["academy_name"] = strings.TrimSpace(*req.AcademyName)
	}
	if req.AcademyDescription != nil {
		updates["academy_description"] = req.AcademyDescription
	}
	if req.AcademyContactEmail != nil {
		updates["academy_contact_email"] = req.AcademyContactEmail
	}
	if req.AcademyContactPhone != nil {
		updates["academy_contact_phone"] = req.AcademyContactPhone
	}
	if req.AcademyAddress != nil {
		updates["academy_address"] = req.AcademyAddress
	}
	if req.AcademyIsActive != nil {
		updates["academy_is_active"] = *req.AcademyIsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToAcademyResponse(academy))
	}

	if err := ctrl.DB.Model(&academy).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update academy")
	}

	return helper.JsonUpdated(c, "Academy updated", dto.ToAcademyResponse(academy))
}

// DELETE /api/o/academies/:id (soft delete + deactivate)
func (ctrl *AcademyController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid academy id")
	}

	var academy model.AcademyModel
	if err := ctrl.DB.First(&academy, "academy_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Academy not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch academy")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if e := tx.Model(&academy).Update("academy_is_active", false).Error; e != nil {
			return e
		}
		return tx.Delete(&academy).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete academy")
	}

	return helper.JsonDeleted(c, "Academy deleted", fiber.Map{"academy_id": academy.AcademyID})
}
