package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/features/memberships/dto"
	"academia_backend/internals/features/memberships/model"
	helper "academia_backend/internals/helpers"
)

type MembershipController struct {
	DB *gorm.DB
}

func NewMembershipController(db *gorm.DB) *MembershipController {
	return &MembershipController{DB: db}
}

var validate = validator.New()

// POST /api/a/memberships
// Associates a person with the current academy. At most one active
// membership of the same relation type per (person, academy).
func (ctrl *MembershipController) Associate(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AssociateMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var dup int64
	err = ctrl.DB.Model(&model.MembershipModel{}).
		Where("membership_person_id = ? AND membership_academy_id = ? AND membership_relation = ? AND membership_is_active = TRUE",
			req.MembershipPersonID, academyID, req.MembershipRelation).
		Count(&dup).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing membership")
	}
	if dup > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Person already has an active membership of this type in the academy")
	}

	start := time.Now()
	if req.MembershipStartDate != nil {
		start = *req.MembershipStartDate
	}

	membership := model.MembershipModel{
		MembershipPersonID:         req.MembershipPersonID,
		MembershipAcademyID:        academyID,
		MembershipRelation:         model.MembershipRelation(req.MembershipRelation),
		MembershipIsActive:         true,
		MembershipStartDate:        start,
		MembershipEndDate:          req.MembershipEndDate,
		MembershipCreditsRemaining: req.MembershipCreditsRemaining,
		MembershipMeta:             req.MembershipMeta,
	}
	if err := ctrl.DB.Create(&membership).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create membership")
	}

	return helper.JsonCreated(c, "Membership created", dto.ToMembershipResponse(membership))
}

// GET /api/a/memberships?person_id=&relation=&is_active=
func (ctrl *MembershipController) List(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.MembershipModel{}).
		Where("membership_academy_id = ?", academyID)
	if pid := c.Query("person_id"); pid != "" {
		personID, perr := uuid.Parse(pid)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid person_id")
		}
		q = q.Where("membership_person_id = ?", personID)
	}
	if rel := c.Query("relation"); rel != "" {
		q = q.Where("membership_relation = ?", rel)
	}
	if active := c.Query("is_active"); active != "" {
		q = q.Where("membership_is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count memberships")
	}

	var memberships []model.MembershipModel
	if err := q.Order("membership_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&memberships).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch memberships")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Memberships fetched", dto.ToMembershipResponses(memberships), pagination)
}

// PUT /api/a/memberships/:id
func (ctrl *MembershipController) Update(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid membership id")
	}

	var req dto.UpdateMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var membership model.MembershipModel
	if err := ctrl.DB.First(&membership, "membership_id = ? AND membership_academy_id = ?", id, academyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Membership not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch membership")
	}

	updates := map[string]any{}
	if req.MembershipEndDate != nil {
		updates["membership_end_date"] = req.MembershipEndDate
	}
	if req.MembershipIsActive != nil {
		updates["membership_is_active"] = *req.MembershipIsActive
	}
	if req.MembershipCreditsRemaining != nil {
		updates["membership_credits_remaining"] = *req.MembershipCreditsRemaining
	}
	if len(req.MembershipMeta) > 0 {
		updates["membership_meta"] = req.MembershipMeta
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToMembershipResponse(membership))
	}

	if err := ctrl.DB.Model(&membership).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update membership")
	}

	return helper.JsonUpdated(c, "Membership updated", dto.ToMembershipResponse(membership))
}

// POST /api/a/memberships/:id/end
// Ends the membership now: inactive + end date stamped.
func (ctrl *MembershipController) End(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid membership id")
	}

	var membership model.MembershipModel
	if err := ctrl.DB.First(&membership, "membership_id = ? AND membership_academy_id = ?", id, academyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Membership not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch membership")
	}
	if !membership.MembershipIsActive {
		return helper.JsonError(c, fiber.StatusConflict, "Membership is already ended")
	}

	now := time.Now()
	if err := ctrl.DB.Model(&membership).Updates(map[string]any{
		"membership_is_active": false,
		"membership_end_date":  now,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to end membership")
	}

	return helper.JsonUpdated(c, "Membership ended", dto.ToMembershipResponse(membership))
}
