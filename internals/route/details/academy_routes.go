package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academyRoute "academia_backend/internals/features/academies/route"
	userRoute "academia_backend/internals/features/users/user/route"
)

// AcademyOwnerRoutes mounts tenant and user administration under /api/o.
func AcademyOwnerRoutes(owner fiber.Router, db *gorm.DB) {
	academyRoute.AcademyOwnerRoutes(owner, db)
	userRoute.UserOwnerRoutes(owner, db)
}
