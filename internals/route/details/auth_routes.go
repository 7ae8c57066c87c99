package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "academia_backend/internals/features/users/auth/route"
	userRoute "academia_backend/internals/features/users/user/route"
	"academia_backend/internals/mailer"
)

// AuthRoutes mounts /api/auth.
func AuthRoutes(api fiber.Router, db *gorm.DB, mail mailer.EmailService) {
	authRoute.AuthRoutes(api, db, mail)
}

// UserRoutes mounts the authenticated self endpoints under /api/u.
func UserRoutes(user fiber.Router, db *gorm.DB) {
	userRoute.UserSelfRoutes(user, db)
}
