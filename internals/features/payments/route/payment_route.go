package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academia_backend/internals/features/payments/controller"
	"academia_backend/internals/features/payments/service"
)

// PaymentPublicRoutes mounts the gateway webhook.
func PaymentPublicRoutes(r fiber.Router, db *gorm.DB, svc *service.PaymentService) {
	ctrl := controller.NewPaymentController(db, svc)
	r.Post("/payments/notification", ctrl.HandleNotification)
}

// PaymentUserRoutes mounts the student's own ledger view.
func PaymentUserRoutes(r fiber.Router, db *gorm.DB, svc *service.PaymentService) {
	ctrl := controller.NewPaymentController(db, svc)
	r.Get("/payments", ctrl.ListMine)
}

// PaymentAdminRoutes mounts academy-scoped ledger management.
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB, svc *service.PaymentService) {
	ctrl := controller.NewPaymentController(db, svc)

	payments := r.Group("/payments")
	payments.Get("/", ctrl.ListAdmin)
	payments.Post("/:id/refund", ctrl.MarkRefunded)
	payments.Post("/:id/cancel", ctrl.CancelPending)
}
