package route

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/configs"
	classService "academia_backend/internals/features/classes/service"
	insService "academia_backend/internals/features/inscriptions/service"
	membershipService "academia_backend/internals/features/memberships/service"
	paymentService "academia_backend/internals/features/payments/service"
	resService "academia_backend/internals/features/reservations/service"
	helper "academia_backend/internals/helpers"
	"academia_backend/internals/mailer"
	authMiddleware "academia_backend/internals/middlewares/auth"
	"academia_backend/internals/route/details"
)

// SetupRoutes builds the services, wires the payment/enrollment callbacks
// and mounts every route group.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	mail := buildMailer()

	capacity := classService.NewCapacityService(db)
	credits := membershipService.NewCreditService(db)
	inscriptions := insService.NewInscriptionService(insService.NewInscriptionStore(db), capacity, credits)

	gateway := paymentService.InitMidtrans(configs.MidtransServerKey, configs.MidtransUseProd)
	payments := paymentService.NewPaymentService(db, gateway)

	// The two features only reference each other through these contracts.
	inscriptions.Payments = payments
	payments.Inscriptions = paymentService.ConfirmerFunc(
		func(ctx context.Context, inscriptionID, paymentID uuid.UUID) error {
			_, err := inscriptions.ConfirmPaymentAndUpdateStatus(ctx, inscriptionID, paymentID)
			return err
		})

	reservations := resService.NewReservationService(resService.NewReservationStore(db), inscriptions, mail)

	api := app.Group("/api")

	public := api.Group("/public")
	public.Get("/health", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "ok", fiber.Map{"service": "academia_backend"})
	})
	details.EnrollmentPublicRoutes(public, db)
	details.FinancePublicRoutes(public, db, payments)

	details.AuthRoutes(api, db, mail)

	user := api.Group("/u", authMiddleware.AuthMiddleware(db))
	details.UserRoutes(user, db)
	details.EnrollmentUserRoutes(user, db, reservations, inscriptions)
	details.FinanceUserRoutes(user, db, payments)

	admin := api.Group("/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.UseAcademyScope(),
		authMiddleware.IsAcademyAdmin(),
	)
	details.EnrollmentAdminRoutes(admin, db, reservations, inscriptions)
	details.FinanceAdminRoutes(admin, db, payments)

	owner := api.Group("/o",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.IsOwnerGlobal(),
	)
	details.AcademyOwnerRoutes(owner, db)
}

func buildMailer() mailer.EmailService {
	if configs.SendgridAPIKey != "" {
		return mailer.NewSendgridService(configs.SendgridAPIKey, configs.MailFromName, configs.MailFromAddress)
	}
	return mailer.NewConsoleService()
}
