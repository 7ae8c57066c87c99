package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academia_backend/internals/features/persons/controller"
)

// PersonAdminRoutes mounts academy-scoped contact management.
func PersonAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPersonController(db)

	persons := r.Group("/persons")
	persons.Post("/", ctrl.Create)
	persons.Get("/", ctrl.List)
	persons.Get("/:id", ctrl.GetByID)
	persons.Put("/:id", ctrl.Update)
	persons.Delete("/:id", ctrl.Delete)
}
