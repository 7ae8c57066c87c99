package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academia_backend/internals/features/memberships/controller"
)

// MembershipAdminRoutes mounts academy-scoped membership management.
func MembershipAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMembershipController(db)

	memberships := r.Group("/memberships")
	memberships.Post("/", ctrl.Associate)
	memberships.Get("/", ctrl.List)
	memberships.Put("/:id", ctrl.Update)
	memberships.Post("/:id/end", ctrl.End)
}
