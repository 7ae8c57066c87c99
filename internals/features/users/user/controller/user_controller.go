package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/features/users/user/dto"
	"academia_backend/internals/features/users/user/model"
	helper "academia_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var validate = validator.New()

// GET /api/u/me
func (ctrl *UserController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user model.User
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	var roles []model.UserAcademyRole
	if err := ctrl.DB.Where("user_academy_role_user_id = ?", userID).Find(&roles).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch roles")
	}

	roleOut := make([]dto.AcademyRoleResponse, 0, len(roles))
	for _, r := range roles {
		roleOut = append(roleOut, dto.ToAcademyRoleResponse(r))
	}

	return helper.JsonOK(c, "Profile fetched", fiber.Map{
		"user":          dto.ToUserResponse(user),
		"academy_roles": roleOut,
	})
}

// GET /api/o/users
func (ctrl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.User{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("user_name ILIKE ? OR user_email ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []model.User
	if err := q.Order("user_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Users fetched", dto.ToUserResponses(users), pagination)
}

// POST /api/o/users/:id/roles
func (ctrl *UserController) AssignRole(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.User
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	var dup int64
	err = ctrl.DB.Model(&model.UserAcademyRole{}).
		Where("user_academy_role_user_id = ? AND user_academy_role_academy_id = ? AND user_academy_role_role = ?",
			userID, req.AcademyID, req.Role).
		Count(&dup).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing role")
	}
	if dup > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "User already has this role in the academy")
	}

	role := model.UserAcademyRole{
		UserAcademyRoleUserID:    userID,
		UserAcademyRoleAcademyID: req.AcademyID,
		UserAcademyRoleRole:      req.Role,
	}
	if err := ctrl.DB.Create(&role).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to assign role")
	}

	return helper.JsonCreated(c, "Role assigned", dto.ToAcademyRoleResponse(role))
}

// DELETE /api/o/users/:id/roles/:role_id
func (ctrl *UserController) RemoveRole(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	roleID, err := uuid.Parse(c.Params("role_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role id")
	}

	res := ctrl.DB.Where("user_academy_role_id = ? AND user_academy_role_user_id = ?", roleID, userID).
		Delete(&model.UserAcademyRole{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove role")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Role assignment not found")
	}

	return helper.JsonDeleted(c, "Role removed", fiber.Map{"user_academy_role_id": roleID})
}

// POST /api/o/users/:id/deactivate
func (ctrl *UserController) Deactivate(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	res := ctrl.DB.Model(&model.User{}).
		Where("user_id = ? AND user_is_active = TRUE", userID).
		Update("user_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to deactivate user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found or already inactive")
	}

	return helper.JsonUpdated(c, "User deactivated", fiber.Map{"user_id": userID})
}
