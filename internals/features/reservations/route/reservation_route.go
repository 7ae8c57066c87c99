package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academia_backend/internals/features/reservations/controller"
	"academia_backend/internals/features/reservations/service"
)

// ReservationUserRoutes mounts the student-facing request endpoints.
func ReservationUserRoutes(r fiber.Router, db *gorm.DB, svc *service.ReservationService) {
	ctrl := controller.NewReservationController(db, svc)

	reservations := r.Group("/reservations")
	reservations.Post("/", ctrl.Create)
	reservations.Get("/", ctrl.ListMine)
	reservations.Post("/:id/cancel", ctrl.CancelMine)
}

// ReservationAdminRoutes mounts the admin decision endpoints.
func ReservationAdminRoutes(r fiber.Router, db *gorm.DB, svc *service.ReservationService) {
	ctrl := controller.NewReservationController(db, svc)

	reservations := r.Group("/reservations")
	reservations.Get("/", ctrl.ListAdmin)
	reservations.Post("/:id/process", ctrl.Process)
}
