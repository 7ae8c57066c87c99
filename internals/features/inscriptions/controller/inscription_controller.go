package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/features/inscriptions/dto"
	"academia_backend/internals/features/inscriptions/model"
	"academia_backend/internals/features/inscriptions/service"
	helper "academia_backend/internals/helpers"
)

type InscriptionController struct {
	DB      *gorm.DB
	Service *service.InscriptionService
}

func NewInscriptionController(db *gorm.DB, svc *service.InscriptionService) *InscriptionController {
	return &InscriptionController{DB: db, Service: svc}
}

var validate = validator.New()

// POST /api/a/inscriptions: direct admin enrollment, no reservation.
func (ctrl *InscriptionController) Create(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateInscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctrl.Service.Create(c.Context(), service.CreateInput{
		AdminID:      adminID,
		StudentID:    req.StudentID,
		ClassID:      req.ClassID,
		AcademyID:    academyID,
		PaymentType:  model.PaymentType(req.PaymentType),
		Amount:       req.Amount,
		Currency:     req.Currency,
		MembershipID: req.MembershipID,
		AdminNotes:   req.AdminNotes,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Enrollment created", dto.ToCreatedInscriptionResponse(res))
}

// GET /api/a/inscriptions?class_id=&student_id=&status=
func (ctrl *InscriptionController) ListAdmin(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.InscriptionModel{}).
		Where("inscription_academy_id = ?", academyID)
	if cid := c.Query("class_id"); cid != "" {
		classID, perr := uuid.Parse(cid)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
		}
		q = q.Where("inscription_class_id = ?", classID)
	}
	if sid := c.Query("student_id"); sid != "" {
		studentID, perr := uuid.Parse(sid)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student_id")
		}
		q = q.Where("inscription_student_user_id = ?", studentID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("inscription_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count enrollments")
	}

	var inscriptions []model.InscriptionModel
	if err := q.Order("inscription_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&inscriptions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Enrollments fetched", dto.ToInscriptionResponses(inscriptions), pagination)
}

// GET /api/a/inscriptions/:id
func (ctrl *InscriptionController) GetByID(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid inscription id")
	}

	var ins model.InscriptionModel
	if err := ctrl.DB.First(&ins, "inscription_id = ? AND inscription_academy_id = ?", id, academyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch enrollment")
	}

	return helper.JsonOK(c, "Enrollment fetched", dto.ToInscriptionResponse(ins))
}

// PUT /api/a/inscriptions/:id/attendance
func (ctrl *InscriptionController) UpdateAttendance(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid inscription id")
	}

	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ins, err := ctrl.Service.UpdateAttendance(c.Context(), id, academyID, model.InscriptionStatus(req.Status))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Attendance updated", dto.ToInscriptionResponse(*ins))
}

// POST /api/a/inscriptions/:id/cancel
func (ctrl *InscriptionController) Cancel(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid inscription id")
	}

	var req dto.CancelInscriptionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	ins, err := ctrl.Service.AdminCancel(c.Context(), id, academyID, adminID, req.Reason)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Enrollment cancelled", dto.ToInscriptionResponse(*ins))
}

// GET /api/u/inscriptions: the student's own enrollments.
func (ctrl *InscriptionController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.InscriptionModel{}).
		Where("inscription_student_user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		q = q.Where("inscription_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count enrollments")
	}

	var inscriptions []model.InscriptionModel
	if err := q.Order("inscription_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&inscriptions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Enrollments fetched", dto.ToInscriptionResponses(inscriptions), pagination)
}
