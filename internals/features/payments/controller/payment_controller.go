package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/features/payments/dto"
	"academia_backend/internals/features/payments/model"
	"academia_backend/internals/features/payments/service"
	helper "academia_backend/internals/helpers"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *service.PaymentService
}

func NewPaymentController(db *gorm.DB, svc *service.PaymentService) *PaymentController {
	return &PaymentController{DB: db, Service: svc}
}

// POST /api/public/payments/notification: Midtrans webhook.
// Always answers 200 once the body parses; the gateway retries anything
// else and the processing itself is idempotent.
func (ctrl *PaymentController) HandleNotification(c *fiber.Ctx) error {
	var n dto.MidtransNotification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification body")
	}
	if n.OrderID == "" || n.TransactionStatus == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing order_id or transaction_status")
	}

	if err := ctrl.Service.HandleGatewayEvent(c.Context(), n, c.Body()); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process notification")
	}
	return helper.JsonOK(c, "Notification processed", nil)
}

// GET /api/u/payments: the student's own ledger entries.
func (ctrl *PaymentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PaymentModel{}).
		Where("payment_user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count payments")
	}

	var payments []model.PaymentModel
	if err := q.Order("payment_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Payments fetched", dto.ToPaymentResponses(payments), pagination)
}

// GET /api/a/payments?status=&user_id=
func (ctrl *PaymentController) ListAdmin(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PaymentModel{}).
		Where("payment_academy_id = ?", academyID)
	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}
	if uid := c.Query("user_id"); uid != "" {
		userID, perr := uuid.Parse(uid)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user_id")
		}
		q = q.Where("payment_user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count payments")
	}

	var payments []model.PaymentModel
	if err := q.Order("payment_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Payments fetched", dto.ToPaymentResponses(payments), pagination)
}

// POST /api/a/payments/:id/refund: operator confirms money went back.
func (ctrl *PaymentController) MarkRefunded(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payment id")
	}

	payment, err := ctrl.Service.MarkRefunded(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Payment marked as refunded", dto.ToPaymentResponse(*payment))
}

// POST /api/a/payments/:id/cancel: void an unpaid checkout.
func (ctrl *PaymentController) CancelPending(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payment id")
	}

	payment, err := ctrl.Service.CancelPending(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Payment cancelled", dto.ToPaymentResponse(*payment))
}
