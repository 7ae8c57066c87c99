package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"academia_backend/internals/constants"
	helper "academia_backend/internals/helpers"
)

// IsOwnerGlobal admits only platform owners.
func IsOwnerGlobal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helper.IsOwner(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorOwner(c.Path()))
		}
		return c.Next()
	}
}

// UseAcademyScope resolves the active academy for the request: the
// X-Academy-ID header (or :academy_id path param) must match one of the
// token's academy roles; with exactly one academy role the scope is implied.
func UseAcademyScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requested := c.Get("X-Academy-ID")
		if requested == "" {
			requested = c.Params("academy_id")
		}

		roles := helper.GetAcademyRolesFromToken(c)

		if requested == "" {
			if helper.IsOwner(c) {
				return helper.JsonError(c, fiber.StatusBadRequest, "X-Academy-ID header is required for owner requests")
			}
			if len(roles) == 1 {
				c.Locals("academy_id", roles[0].AcademyID.String())
				return c.Next()
			}
			return helper.JsonError(c, fiber.StatusBadRequest, "X-Academy-ID header is required")
		}

		id, err := uuid.Parse(requested)
		if err != nil || id == uuid.Nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid academy id")
		}
		if !helper.IsOwner(c) {
			found := false
			for _, ar := range roles {
				if ar.AcademyID == id {
					found = true
					break
				}
			}
			if !found {
				return helper.JsonError(c, fiber.StatusForbidden, "You have no role in this academy")
			}
		}
		c.Locals("academy_id", id.String())
		return c.Next()
	}
}

// IsAcademyAdmin requires an admin role in the resolved academy scope.
// This is the capability check the workflow core relies on: the services
// themselves never compare role literals.
func IsAcademyAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		academyID, err := helper.GetAcademyIDFromToken(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if !helper.HasAcademyRole(c, academyID, constants.RoleAdmin) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin(c.Path()))
		}
		return c.Next()
	}
}
