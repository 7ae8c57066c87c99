package constants

import "fmt"

// Academy-scoped roles (stored per user per academy) plus the global owner.
const (
	RoleOwner   = "owner" // global, not tied to one academy
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

var (
	AllRoles = []string{
		RoleOwner,
		RoleAdmin,
		RoleTeacher,
		RoleStudent,
	}

	AdminAndAbove = []string{
		RoleOwner,
		RoleAdmin,
	}

	StaffRoles = []string{
		RoleOwner,
		RoleAdmin,
		RoleTeacher,
	}
)

const (
	ErrOnlyAdminsCanAccess = "Only academy admins may access %s."
	ErrOnlyOwnersCanAccess = "Only the platform owner may access %s."
	ErrOnlyStaffCanAccess  = "Only academy staff may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}
