package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academia_backend/internals/features/classes/controller"
)

// ClassPublicRoutes exposes the browseable class catalogue.
func ClassPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewClassController(db)
	r.Get("/classes", ctrl.ListPublic)
}

// ClassAdminRoutes mounts academy-scoped class management.
func ClassAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewClassController(db)

	classes := r.Group("/classes")
	classes.Post("/", ctrl.Create)
	classes.Get("/", ctrl.ListAdmin)
	classes.Get("/:id", ctrl.GetByID)
	classes.Put("/:id", ctrl.Update)
	classes.Delete("/:id", ctrl.Delete)
}
