package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academia_backend/internals/features/academies/controller"
)

// AcademyOwnerRoutes mounts owner-level tenant management.
func AcademyOwnerRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAcademyController(db)

	academies := r.Group("/academies")
	academies.Post("/", ctrl.Create)
	academies.Get("/", ctrl.List)
	academies.Get("/:id", ctrl.GetByID)
	academies.Put("/:id", ctrl.Update)
	academies.Delete("/:id", ctrl.Delete)
}
