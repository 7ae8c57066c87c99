package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academia_backend/internals/features/persons/dto"
	"academia_backend/internals/features/persons/model"
	helper "academia_backend/internals/helpers"
)

type PersonController struct {
	DB *gorm.DB
}

func NewPersonController(db *gorm.DB) *PersonController {
	return &PersonController{DB: db}
}

var validate = validator.New()

// POST /api/a/persons
func (ctrl *PersonController) Create(c *fiber.Ctx) error {
	var req dto.CreatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	person := model.PersonModel{
		PersonFirstName: strings.TrimSpace(req.PersonFirstName),
		PersonLastName:  strings.TrimSpace(req.PersonLastName),
		PersonEmail:     req.PersonEmail,
		PersonPhone:     req.PersonPhone,
		PersonBirthDate: req.PersonBirthDate,
		PersonNotes:     req.PersonNotes,
		PersonUserID:    req.PersonUserID,
	}
	if err := ctrl.DB.Create(&person).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create person")
	}

	return helper.JsonCreated(c, "Person created", dto.ToPersonResponse(person))
}

// GET /api/a/persons?search=&page=&per_page=
// Scoped to persons having a membership in the current academy unless
// ?all=true (still academy staff only, just without the membership join).
func (ctrl *PersonController) List(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PersonModel{})
	if c.Query("all") != "true" {
		q = q.Joins("JOIN person_academy_memberships pam ON pam.membership_person_id = persons.person_id").
			Where("pam.membership_academy_id = ? AND pam.membership_deleted_at IS NULL", academyID).
			Distinct("persons.*")
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("person_first_name ILIKE ? OR person_last_name ILIKE ? OR person_email ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count persons")
	}

	var persons []model.PersonModel
	if err := q.Order("person_last_name ASC, person_first_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&persons).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch persons")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Persons fetched", dto.ToPersonResponses(persons), pagination)
}

// GET /api/a/persons/:id
func (ctrl *PersonController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid person id")
	}

	var person model.PersonModel
	if err := ctrl.DB.First(&person, "person_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Person not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch person")
	}

	return helper.JsonOK(c, "Person fetched", dto.ToPersonResponse(person))
}

// PUT /api/a/persons/:id
func (ctrl *PersonController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid person id")
	}

	var req dto.UpdatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var person model.PersonModel
	if err := ctrl.DB.First(&person, "person_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Person not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch person")
	}

	updates := map[string]any{}
	if req.PersonFirstName != nil {
		updates["person_first_name"] = strings.TrimSpace(*req.PersonFirstName)
	}
	if req.PersonLastName != nil {
		updates["person_last_name"] = strings.TrimSpace(*req.PersonLastName)
	}
	if req.PersonEmail != nil {
		updates["person_email"] = req.PersonEmail
	}
	if req.PersonPhone != nil {
		updates["person_phone"] = req.PersonPhone
	}
	if req.PersonBirthDate != nil {
		updates["person_birth_date"] = req.PersonBirthDate
	}
	if req.PersonNotes != nil {
		updates["person_notes"] = req.PersonNotes
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToPersonResponse(person))
	}

	if err := ctrl.DB.Model(&person).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update person")
	}

	return helper.JsonUpdated(c, "Person updated", dto.ToPersonResponse(person))
}

// DELETE /api/a/persons/:id
func (ctrl *PersonController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid person id")
	}

	res := ctrl.DB.Delete(&model.PersonModel{}, "person_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete person")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Person not found")
	}

	return helper.JsonDeleted(c, "Person deleted", fiber.Map{"person_id": id})
}
