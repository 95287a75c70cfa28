// internals/features/school/classes/controller/turma_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	turmaDTO "escolar_backend/internals/features/school/classes/dto"
	turmaModel "escolar_backend/internals/features/school/classes/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type TurmaController struct{ DB *gorm.DB }

func NewTurmaController(db *gorm.DB) *TurmaController { return &TurmaController{DB: db} }

var validateTurma = validator.New()

// GET /api/u/turmas — lista escopada pelo papel do usuário.
func (h *TurmaController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeTurmas(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := scope(h.DB.Model(&turmaModel.TurmaModel{}))

	if ano := helper.QueryInt(c, "ano_letivo"); ano > 0 {
		tx = tx.Where("turma_ano_letivo = ?", ano)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar turmas.")
	}

	var turmas []turmaModel.TurmaModel
	if err := tx.Order("turma_ano_letivo DESC, turma_nome").
		Limit(p.Limit).Offset(p.Offset).
		Find(&turmas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar turmas.")
	}
	return helper.JsonList(c, "OK", turmas, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/u/turmas/:id — 404 único para inexistente e fora de escopo.
func (h *TurmaController) GetByID(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	scope, err := authz.ScopeTurmas(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	var turma turmaModel.TurmaModel
	err = scope(h.DB.Model(&turmaModel.TurmaModel{})).
		Where("turma_id = ?", id).
		First(&turma).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return authz.ErrNaoEncontrado
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	return helper.JsonOK(c, "OK", turma)
}

// POST /api/a/turmas — staff da escola.
func (h *TurmaController) Create(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	var req turmaDTO.CreateTurmaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateTurma.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	turma := req.ToModel(escolaID)
	if err := h.DB.Create(turma).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao criar turma.")
	}
	return helper.JsonCreated(c, "Turma criada.", turma)
}

// PUT /api/a/turmas/:id
func (h *TurmaController) Update(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	var req turmaDTO.UpdateTurmaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateTurma.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var turma turmaModel.TurmaModel
	err = h.DB.Where("turma_id = ? AND turma_escola_id = ?", id, escolaID).First(&turma).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return authz.ErrNaoEncontrado
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}

	req.ApplyToModel(&turma)
	if err := h.DB.Save(&turma).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar turma.")
	}
	return helper.JsonUpdated(c, "Turma atualizada.", turma)
}

// DELETE /api/a/turmas/:id (soft delete)
func (h *TurmaController) Delete(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	res := h.DB.Where("turma_id = ? AND turma_escola_id = ?", id, escolaID).
		Delete(&turmaModel.TurmaModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover turma.")
	}
	if res.RowsAffected == 0 {
		return authz.ErrNaoEncontrado
	}
	return helper.JsonDeleted(c, "Turma removida.", fiber.Map{"turma_id": id})
}
