package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academia_backend/internals/features/users/auth/controller"
	"academia_backend/internals/mailer"
	"academia_backend/internals/middlewares"
	authMiddleware "academia_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the public auth endpoints under /api/auth.
func AuthRoutes(r fiber.Router, db *gorm.DB, mail mailer.EmailService) {
	ctrl := controller.NewAuthController(db, mail)

	auth := r.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/refresh", ctrl.Refresh)
	auth.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)
	auth.Post("/reset-password", ctrl.ResetPassword)

	auth.Post("/logout", authMiddleware.AuthMiddleware(db), ctrl.Logout)
}
