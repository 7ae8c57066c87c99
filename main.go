package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"academia_backend/internals/configs"
	database "academia_backend/internals/databases"
	academyModel "academia_backend/internals/features/academies/model"
	classModel "academia_backend/internals/features/classes/model"
	insModel "academia_backend/internals/features/inscriptions/model"
	insScheduler "academia_backend/internals/features/inscriptions/scheduler"
	membershipModel "academia_backend/internals/features/memberships/model"
	paymentModel "academia_backend/internals/features/payments/model"
	personModel "academia_backend/internals/features/persons/model"
	resModel "academia_backend/internals/features/reservations/model"
	authModel "academia_backend/internals/features/users/auth/model"
	authScheduler "academia_backend/internals/features/users/auth/scheduler"
	userModel "academia_backend/internals/features/users/user/model"
	"academia_backend/internals/middlewares"
	"academia_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.WarmUp()

	if configs.GetEnv("DB_AUTO_MIGRATE", "true") == "true" {
		migrate()
	}

	app := fiber.New(fiber.Config{
		AppName:      "academia_backend",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(requestid.New())
	middlewares.SetupMiddlewares(app)

	route.SetupRoutes(app, database.DB)

	authScheduler.StartTokenCleanupScheduler(database.DB, time.Hour)
	insScheduler.StartSeatReconciliationScheduler(database.DB, reconcileInterval())

	go func() {
		port := configs.GetEnv("PORT", "3000")
		log.Printf("🚀 Listening on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("❌ Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown err: %v", err)
	}
	log.Println("👋 Bye.")
}

func migrate() {
	err := database.DB.AutoMigrate(
		&userModel.User{},
		&userModel.UserAcademyRole{},
		&authModel.TokenBlacklist{},
		&authModel.PasswordResetToken{},
		&academyModel.AcademyModel{},
		&personModel.PersonModel{},
		&membershipModel.MembershipModel{},
		&classModel.ClassModel{},
		&resModel.ReservationModel{},
		&insModel.InscriptionModel{},
		&paymentModel.PaymentModel{},
		&paymentModel.PaymentGatewayEvent{},
	)
	if err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}

	// Storage-level backstop for the one-active-enrollment rule. GORM tags
	// cannot express a partial unique index, so it is created here.
	err = database.DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_active_inscription
		ON inscriptions (inscription_student_user_id, inscription_class_id)
		WHERE inscription_status IN ('PENDING_PAYMENT','CONFIRMED','ATTENDED')
		  AND inscription_deleted_at IS NULL
	`).Error
	if err != nil {
		log.Fatalf("❌ partial unique index failed: %v", err)
	}

	log.Println("✅ migrations applied")
}

func reconcileInterval() time.Duration {
	raw := configs.GetEnv("SEAT_RECONCILE_INTERVAL", "10m")
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}
