package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academia_backend/internals/features/inscriptions/controller"
	"academia_backend/internals/features/inscriptions/service"
)

// InscriptionAdminRoutes mounts academy-scoped enrollment management.
func InscriptionAdminRoutes(r fiber.Router, db *gorm.DB, svc *service.InscriptionService) {
	ctrl := controller.NewInscriptionController(db, svc)

	inscriptions := r.Group("/inscriptions")
	inscriptions.Post("/", ctrl.Create)
	inscriptions.Get("/", ctrl.ListAdmin)
	inscriptions.Get("/:id", ctrl.GetByID)
	inscriptions.Put("/:id/attendance", ctrl.UpdateAttendance)
	inscriptions.Post("/:id/cancel", ctrl.Cancel)
}

// InscriptionUserRoutes mounts the student's own view.
func InscriptionUserRoutes(r fiber.Router, db *gorm.DB, svc *service.InscriptionService) {
	ctrl := controller.NewInscriptionController(db, svc)
	r.Get("/inscriptions", ctrl.ListMine)
}
