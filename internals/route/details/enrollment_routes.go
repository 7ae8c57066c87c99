package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classRoute "academia_backend/internals/features/classes/route"
	insRoute "academia_backend/internals/features/inscriptions/route"
	insService "academia_backend/internals/features/inscriptions/service"
	membershipRoute "academia_backend/internals/features/memberships/route"
	personRoute "academia_backend/internals/features/persons/route"
	resRoute "academia_backend/internals/features/reservations/route"
	resService "academia_backend/internals/features/reservations/service"
)

// EnrollmentPublicRoutes mounts the open class catalogue under /api/public.
func EnrollmentPublicRoutes(public fiber.Router, db *gorm.DB) {
	classRoute.ClassPublicRoutes(public, db)
}

// EnrollmentUserRoutes mounts the student-facing workflow under /api/u.
func EnrollmentUserRoutes(user fiber.Router, db *gorm.DB,
	reservations *resService.ReservationService, inscriptions *insService.InscriptionService) {
	resRoute.ReservationUserRoutes(user, db, reservations)
	insRoute.InscriptionUserRoutes(user, db, inscriptions)
}

// EnrollmentAdminRoutes mounts academy administration under /api/a.
func EnrollmentAdminRoutes(admin fiber.Router, db *gorm.DB,
	reservations *resService.ReservationService, inscriptions *insService.InscriptionService) {
	classRoute.ClassAdminRoutes(admin, db)
	resRoute.ReservationAdminRoutes(admin, db, reservations)
	insRoute.InscriptionAdminRoutes(admin, db, inscriptions)
	personRoute.PersonAdminRoutes(admin, db)
	membershipRoute.MembershipAdminRoutes(admin, db)
}
