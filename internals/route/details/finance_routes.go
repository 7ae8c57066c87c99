package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentRoute "academia_backend/internals/features/payments/route"
	paymentService "academia_backend/internals/features/payments/service"
)

// FinancePublicRoutes mounts the gateway webhook under /api/public.
func FinancePublicRoutes(public fiber.Router, db *gorm.DB, payments *paymentService.PaymentService) {
	paymentRoute.PaymentPublicRoutes(public, db, payments)
}

// FinanceUserRoutes mounts the student payment view under /api/u.
func FinanceUserRoutes(user fiber.Router, db *gorm.DB, payments *paymentService.PaymentService) {
	paymentRoute.PaymentUserRoutes(user, db, payments)
}

// FinanceAdminRoutes mounts ledger administration under /api/a.
func FinanceAdminRoutes(admin fiber.Router, db *gorm.DB, payments *paymentService.PaymentService) {
	paymentRoute.PaymentAdminRoutes(admin, db, payments)
}
