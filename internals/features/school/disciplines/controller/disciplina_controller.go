// internals/features/school/disciplines/controller/disciplina_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	disciplinaDTO "escolar_backend/internals/features/school/disciplines/dto"
	disciplinaModel "escolar_backend/internals/features/school/disciplines/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type DisciplinaController struct{ DB *gorm.DB }

func NewDisciplinaController(db *gorm.DB) *DisciplinaController {
	return &DisciplinaController{DB: db}
}

var validateDisciplina = validator.New()

// GET /api/u/disciplinas
func (h *DisciplinaController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeDisciplinas(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := scope(h.DB.Model(&disciplinaModel.DisciplinaModel{}))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar disciplinas.")
	}

	var disciplinas []disciplinaModel.DisciplinaModel
	if err := tx.Order("disciplina_nome").
		Limit(p.Limit).Offset(p.Offset).
		Find(&disciplinas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar disciplinas.")
	}
	return helper.JsonList(c, "OK", disciplinas, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/disciplinas
func (h *DisciplinaController) Create(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	var req disciplinaDTO.CreateDisciplinaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateDisciplina.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	disciplina := req.ToModel(escolaID)
	if err := h.DB.Create(disciplina).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao criar disciplina.")
	}
	return helper.JsonCreated(c, "Disciplina criada.", disciplina)
}

// PUT /api/a/disciplinas/:id
func (h *DisciplinaController) Update(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	var req disciplinaDTO.UpdateDisciplinaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateDisciplina.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var disciplina disciplinaModel.DisciplinaModel
	err = h.DB.Where("disciplina_id = ? AND disciplina_escola_id = ?", id, escolaID).
		First(&disciplina).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return authz.ErrNaoEncontrado
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}

	req.ApplyToModel(&disciplina)
	if err := h.DB.Save(&disciplina).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar disciplina.")
	}
	return helper.JsonUpdated(c, "Disciplina atualizada.", disciplina)
}

// DELETE /api/a/disciplinas/:id (soft delete)
func (h *DisciplinaController) Delete(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	res := h.DB.Where("disciplina_id = ? AND disciplina_escola_id = ?", id, escolaID).
		Delete(&disciplinaModel.DisciplinaModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover disciplina.")
	}
	if res.RowsAffected == 0 {
		return authz.ErrNaoEncontrado
	}
	return helper.JsonDeleted(c, "Disciplina removida.", fiber.Map{"disciplina_id": id})
}
