package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	insModel "academia_backend/internals/features/inscriptions/model"
	"academia_backend/internals/features/reservations/dto"
	"academia_backend/internals/features/reservations/model"
	"academia_backend/internals/features/reservations/service"
	helper "academia_backend/internals/helpers"
)

type ReservationController struct {
	DB      *gorm.DB
	Service *service.ReservationService
}

func NewReservationController(db *gorm.DB, svc *service.ReservationService) *ReservationController {
	return &ReservationController{DB: db, Service: svc}
}

var validate = validator.New()

// POST /api/u/reservations: student asks for a seat.
func (ctrl *ReservationController) Create(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	r, err := ctrl.Service.CreateReservation(c.Context(), studentID, req.ClassID, req.StudentNotes)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Reservation request created", dto.ToReservationResponse(*r))
}

// GET /api/u/reservations: the student's own requests.
func (ctrl *ReservationController) ListMine(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ReservationModel{}).
		Where("reservation_student_user_id = ?", studentID)
	if status := c.Query("status"); status != "" {
		q = q.Where("reservation_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count requests")
	}

	var requests []model.ReservationModel
	if err := q.Order("reservation_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&requests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch requests")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Requests fetched", dto.ToReservationResponses(requests), pagination)
}

// POST /api/u/reservations/:id/cancel: owner withdraws a PENDING request.
func (ctrl *ReservationController) CancelMine(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid reservation id")
	}

	r, err := ctrl.Service.CancelByUser(c.Context(), id, studentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Reservation cancelled", dto.ToReservationResponse(*r))
}

// GET /api/a/reservations?status=&class_id=
func (ctrl *ReservationController) ListAdmin(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ReservationModel{}).
		Where("reservation_academy_id = ?", academyID)
	if status := c.Query("status"); status != "" {
		q = q.Where("reservation_status = ?", status)
	}
	if cid := c.Query("class_id"); cid != "" {
		classID, perr := uuid.Parse(cid)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
		}
		q = q.Where("reservation_class_id = ?", classID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count requests")
	}

	var requests []model.ReservationModel
	if err := q.Order("reservation_created_at ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&requests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch requests")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Requests fetched", dto.ToReservationResponses(requests), pagination)
}

// POST /api/a/reservations/:id/process: admin approval or rejection.
func (ctrl *ReservationController) Process(c *fiber.Ctx) error {
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
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid reservation id")
	}

	var req dto.ProcessReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var details *service.PaymentDetails
	if req.PaymentDetails != nil {
		details = &service.PaymentDetails{
			PaymentType:  insModel.PaymentType(req.PaymentDetails.PaymentType),
			Amount:       req.PaymentDetails.Amount,
			Currency:     req.PaymentDetails.Currency,
			MembershipID: req.PaymentDetails.MembershipID,
		}
	}

	r, err := ctrl.Service.ProcessReservation(c.Context(), service.ProcessInput{
		RequestID:      id,
		AdminID:        adminID,
		AcademyID:      academyID,
		Decision:       model.ReservationStatus(req.Decision),
		AdminNotes:     req.AdminNotes,
		PaymentDetails: details,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Reservation processed", dto.ToReservationResponse(*r))
}
