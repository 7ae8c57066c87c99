package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academia_backend/internals/features/users/user/controller"
)

// UserSelfRoutes mounts the authenticated user's own endpoints.
func UserSelfRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)
	r.Get("/me", ctrl.Me)
}

// UserOwnerRoutes mounts owner-level user management.
func UserOwnerRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	users := r.Group("/users")
	users.Get("/", ctrl.List)
	users.Post("/:id/roles", ctrl.AssignRole)
	users.Delete("/:id/roles/:role_id", ctrl.RemoveRole)
	users.Post("/:id/deactivate", ctrl.Deactivate)
}
