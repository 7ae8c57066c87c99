package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AcademyRole is one entry of the token's per-academy role claim.
type AcademyRole struct {
	AcademyID uuid.UUID `json:"academy_id"`
	Role      string    `json:"role"`
}

// GetUserIDFromToken reads the user id stored by the auth middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Missing user context")
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user context")
	}
	return id, nil
}

// GetAcademyIDFromToken reads the active academy scope resolved by the
// academy-scope middleware (admin routes only).
func GetAcademyIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("academy_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Missing academy scope")
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Invalid academy scope")
	}
	return id, nil
}

func GetAcademyRolesFromToken(c *fiber.Ctx) []AcademyRole {
	roles, ok := c.Locals("academy_roles").([]AcademyRole)
	if !ok {
		return nil
	}
	return roles
}

func IsOwner(c *fiber.Ctx) bool {
	v, ok := c.Locals("is_owner").(bool)
	return ok && v
}

// HasAcademyRole answers whether the current actor holds one of the given
// roles inside the academy. The owner passes every academy check.
func HasAcademyRole(c *fiber.Ctx, academyID uuid.UUID, roles ...string) bool {
	if IsOwner(c) {
		return true
	}
	for _, ar := range GetAcademyRolesFromToken(c) {
		if ar.AcademyID != academyID {
			continue
		}
		for _, r := range roles {
			if ar.Role == r {
				return true
			}
		}
	}
	return false
}
