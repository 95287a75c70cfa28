// internals/features/school/teachers_guardians/controller/responsavel_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	alunoModel "escolar_backend/internals/features/school/students/model"
	tgDTO "escolar_backend/internals/features/school/teachers_guardians/dto"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
	userModel "escolar_backend/internals/features/users/user/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

// ResponsavelController — gestão de responsáveis pelo staff (/api/a).
type ResponsavelController struct{ DB *gorm.DB }

func NewResponsavelController(db *gorm.DB) *ResponsavelController {
	return &ResponsavelController{DB: db}
}

// GET /api/a/responsaveis
func (h *ResponsavelController) List(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := h.DB.Model(&tgModel.ResponsavelModel{}).
		Where("responsavel_escola_id = ?", escolaID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar responsáveis.")
	}

	var responsaveis []tgModel.ResponsavelModel
	if err := tx.Order("responsavel_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&responsaveis).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar responsáveis.")
	}
	return helper.JsonList(c, "OK", responsaveis, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/responsaveis
func (h *ResponsavelController) Create(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	var req tgDTO.CreateResponsavelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateTG.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var user userModel.UserModel
	if err := h.DB.Where("user_id = ? AND user_is_active = ?", req.UserID, true).First(&user).Error; err != nil {
		return authz.ErrNaoEncontrado
	}

	var existing tgModel.ResponsavelModel
	err = h.DB.Where("responsavel_escola_id = ? AND responsavel_user_id = ?", escolaID, req.UserID).
		First(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "Usuário já é responsável nesta escola.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}

	responsavel := tgModel.ResponsavelModel{
		ResponsavelEscolaID: escolaID,
		ResponsavelUserID:   req.UserID,
	}
	if err := h.DB.Create(&responsavel).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao criar responsável.")
	}
	return helper.JsonCreated(c, "Responsável criado.", responsavel)
}

// DELETE /api/a/responsaveis/:id (soft delete)
func (h *ResponsavelController) Delete(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	res := h.DB.Where("responsavel_id = ? AND responsavel_escola_id = ?", id, escolaID).
		Delete(&tgModel.ResponsavelModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover responsável.")
	}
	if res.RowsAffected == 0 {
		return authz.ErrNaoEncontrado
	}
	return helper.JsonDeleted(c, "Responsável removido.", fiber.Map{"responsavel_id": id})
}

// POST /api/a/responsaveis/:id/alunos — vincula um aluno da mesma escola.
func (h *ResponsavelController) VincularAluno(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	responsavelID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	var req tgDTO.VincularAlunoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateTG.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var responsavel tgModel.ResponsavelModel
	if err := h.DB.Where("responsavel_id = ? AND responsavel_escola_id = ?", responsavelID, escolaID).
		First(&responsavel).Error; err != nil {
		return authz.ErrNaoEncontrado
	}
	var aluno alunoModel.AlunoModel
	if err := h.DB.Where("aluno_id = ? AND aluno_escola_id = ?", req.AlunoID, escolaID).
		First(&aluno).Error; err != nil {
		return authz.ErrNaoEncontrado
	}

	var n int64
	h.DB.Model(&tgModel.AlunoResponsavelModel{}).
		Where("aluno_responsavel_aluno_id = ? AND aluno_responsavel_responsavel_id = ?", req.AlunoID, responsavelID).
		Count(&n)
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Aluno já vinculado a este responsável.")
	}

	pivo := tgModel.AlunoResponsavelModel{
		AlunoResponsavelEscolaID:      escolaID,
		AlunoResponsavelAlunoID:       req.AlunoID,
		AlunoResponsavelResponsavelID: responsavelID,
		AlunoResponsavelPrincipal:     req.Principal,
	}
	if err := h.DB.Create(&pivo).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao vincular aluno.")
	}
	return helper.JsonCreated(c, "Aluno vinculado.", pivo)
}

// DELETE /api/a/responsaveis/:id/alunos/:alunoId
func (h *ResponsavelController) DesvincularAluno(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	responsavelID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}
	alunoID, err := uuid.Parse(c.Params("alunoId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	res := h.DB.Where("aluno_responsavel_escola_id = ? AND aluno_responsavel_responsavel_id = ? AND aluno_responsavel_aluno_id = ?",
		escolaID, responsavelID, alunoID).
		Delete(&tgModel.AlunoResponsavelModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao desvincular aluno.")
	}
	if res.RowsAffected == 0 {
		return authz.ErrNaoEncontrado
	}
	return helper.JsonDeleted(c, "Aluno desvinculado.", nil)
}
