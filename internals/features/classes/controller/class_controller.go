package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/features/classes/dto"
	"academia_backend/internals/features/classes/model"
	helper "academia_backend/internals/helpers"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

var validate = validator.New()

// POST /api/a/classes
func (ctrl *ClassController) Create(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.ClassCurrency))
	if currency == "" {
		currency = "USD"
	}

	class := model.ClassModel{
		ClassAcademyID:     academyID,
		ClassName:          strings.TrimSpace(req.ClassName),
		ClassDescription:   req.ClassDescription,
		ClassTeacherUserID: req.ClassTeacherUserID,
		ClassStartTime:     req.ClassStartTime,
		ClassEndTime:       req.ClassEndTime,
		ClassPrice:         req.ClassPrice,
		ClassCurrency:      currency,
		ClassCapacity:      req.ClassCapacity,
		ClassIsActive:      true,
	}
	if err := ctrl.DB.Create(&class).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create class")
	}

	return helper.JsonCreated(c, "Class created", dto.ToClassResponse(class))
}

// GET /api/a/classes (admin view, academy-scoped)
func (ctrl *ClassController) ListAdmin(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctrl.list(c, ctrl.DB.Model(&model.ClassModel{}).Where("class_academy_id = ?", academyID))
}

// GET /api/public/classes (browseable catalogue, active only)
func (ctrl *ClassController) ListPublic(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.ClassModel{}).Where("class_is_active = TRUE")
	if aid := c.Query("academy_id"); aid != "" {
		academyID, perr := uuid.Parse(aid)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid academy_id")
		}
		q = q.Where("class_academy_id = ?", academyID)
	}
	return ctrl.list(c, q)
}

func (ctrl *ClassController) list(c *fiber.Ctx, q *gorm.DB) error {
	paging := helper.ResolvePaging(c, 20, 100)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("class_name ILIKE ?", "%"+search+"%")
	}
	if tid := c.Query("teacher_id"); tid != "" {
		teacherID, err := uuid.Parse(tid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher_id")
		}
		q = q.Where("class_teacher_user_id = ?", teacherID)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("class_start_time >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("class_start_time <= ?", to)
	}
	if active := c.Query("is_active"); active != "" {
		q = q.Where("class_is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count classes")
	}

	var classes []model.ClassModel
	if err := q.Order("class_start_time ASC NULLS LAST, class_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Classes fetched", dto.ToClassResponses(classes), pagination)
}

// GET /api/a/classes/:id
func (ctrl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var class model.ClassModel
	if err := ctrl.DB.First(&class, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	return helper.JsonOK(c, "Class fetched", dto.ToClassResponse(class))
}

// PUT /api/a/classes/:id
// Capacity may shrink below the enrolled count only to the enrolled count.
// class_enrolled_count is never writable here.
func (ctrl *ClassController) Update(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var class model.ClassModel
	if err := ctrl.DB.First(&class, "class_id = ? AND class_academy_id = ?", id, academyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	updates := map[string]any{}
	if req.ClassName != nil {
		updates["class_name"] = strings.TrimSpace(*req.ClassName)
	}
	if req.ClassDescription != nil {
		updates["class_description"] = req.ClassDescription
	}
	if req.ClassTeacherUserID != nil {
		updates["class_teacher_user_id"] = req.ClassTeacherUserID
	}
	if req.ClassStartTime != nil {
		updates["class_start_time"] = req.ClassStartTime
	}
	if req.ClassEndTime != nil {
		updates["class_end_time"] = req.ClassEndTime
	}
	if req.ClassPrice != nil {
		updates["class_price"] = *req.ClassPrice
	}
	if req.ClassCurrency != nil {
		updates["class_currency"] = strings.ToUpper(strings.TrimSpace(*req.ClassCurrency))
	}
	if req.ClassCapacity != nil {
		if *req.ClassCapacity < class.ClassEnrolledCount {
			return helper.JsonError(c, fiber.StatusConflict, "Capacity cannot drop below the current enrolled count")
		}
		updates["class_capacity"] = *req.ClassCapacity
	}
	if req.ClassIsActive != nil {
		updates["class_is_active"] = *req.ClassIsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToClassResponse(class))
	}

	if err := ctrl.DB.Model(&class).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
	}

	return helper.JsonUpdated(c, "Class updated", dto.ToClassResponse(class))
}

// DELETE /api/a/classes/:id
// Refused while enrollments are still active against it.
func (ctrl *ClassController) Delete(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var class model.ClassModel
	if err := ctrl.DB.First(&class, "class_id = ? AND class_academy_id = ?", id, academyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	var active int64
	err = ctrl.DB.Table("inscriptions").
		Where("inscription_class_id = ? AND inscription_status IN ? AND inscription_deleted_at IS NULL",
			id, []string{"CONFIRMED", "PENDING_PAYMENT", "ATTENDED"}).
		Count(&active).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check enrollments")
	}
	if active > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Class still has active enrollments")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if e := tx.Model(&class).Update("class_is_active", false).Error; e != nil {
			return e
		}
		return tx.Delete(&class).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete class")
	}

	return helper.JsonDeleted(c, "Class deleted", fiber.Map{"class_id": class.ClassID})
}
