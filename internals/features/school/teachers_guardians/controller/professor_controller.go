// internals/features/school/teachers_guardians/controller/professor_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	turmaModel "escolar_backend/internals/features/school/classes/model"
	disciplinaModel "escolar_backend/internals/features/school/disciplines/model"
	tgDTO "escolar_backend/internals/features/school/teachers_guardians/dto"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
	userModel "escolar_backend/internals/features/users/user/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

// ProfessorController — gestão de professores pelo staff da escola
// (grupo /api/a, escola ativa já resolvida nos Locals).
type ProfessorController struct{ DB *gorm.DB }

func NewProfessorController(db *gorm.DB) *ProfessorController {
	return &ProfessorController{DB: db}
}

var validateTG = validator.New()

// GET /api/a/professores
func (h *ProfessorController) List(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := h.DB.Model(&tgModel.ProfessorModel{}).
		Where("professor_escola_id = ?", escolaID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar professores.")
	}

	var professores []tgModel.ProfessorModel
	if err := tx.Order("professor_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&professores).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar professores.")
	}
	return helper.JsonList(c, "OK", professores, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/professores — cria o registro de professor para um usuário
// existente; um usuário tem no máximo um professor por escola.
func (h *ProfessorController) Create(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	var req tgDTO.CreateProfessorRequest
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

	var existing tgModel.ProfessorModel
	err = h.DB.Where("professor_escola_id = ? AND professor_user_id = ?", escolaID, req.UserID).
		First(&existing).Error
	if err == nil {
		if !existing.ProfessorIsActive {
			existing.ProfessorIsActive = true
			if err := h.DB.Save(&existing).Error; err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao reativar professor.")
			}
			return helper.JsonOK(c, "Professor reativado.", existing)
		}
		return helper.JsonError(c, fiber.StatusConflict, "Usuário já é professor nesta escola.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}

	professor := tgModel.ProfessorModel{
		ProfessorEscolaID: escolaID,
		ProfessorUserID:   req.UserID,
		ProfessorIsActive: true,
	}
	if err := h.DB.Create(&professor).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao criar professor.")
	}
	return helper.JsonCreated(c, "Professor criado.", professor)
}

// DELETE /api/a/professores/:id — desativa (soft) o professor da escola.
func (h *ProfessorController) Delete(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	res := h.DB.Where("professor_id = ? AND professor_escola_id = ?", id, escolaID).
		Delete(&tgModel.ProfessorModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover professor.")
	}
	if res.RowsAffected == 0 {
		return authz.ErrNaoEncontrado
	}
	return helper.JsonDeleted(c, "Professor removido.", fiber.Map{"professor_id": id})
}

/* ===================== pivôs ===================== */

// POST /api/a/professores/:id/turmas
func (h *ProfessorController) VincularTurma(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	professorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	var req tgDTO.VincularTurmaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateTG.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	// professor e turma precisam pertencer à escola ativa
	if err := h.exigeProfessor(escolaID, professorID); err != nil {
		return err
	}
	var turma turmaModel.TurmaModel
	if err := h.DB.Where("turma_id = ? AND turma_escola_id = ?", req.TurmaID, escolaID).
		First(&turma).Error; err != nil {
		return authz.ErrNaoEncontrado
	}

	var n int64
	h.DB.Model(&tgModel.ProfessorTurmaModel{}).
		Where("professor_turma_professor_id = ? AND professor_turma_turma_id = ?", professorID, req.TurmaID).
		Count(&n)
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Professor já vinculado à turma.")
	}

	pivo := tgModel.ProfessorTurmaModel{
		ProfessorTurmaEscolaID:    escolaID,
		ProfessorTurmaProfessorID: professorID,
		ProfessorTurmaTurmaID:     req.TurmaID,
	}
	if err := h.DB.Create(&pivo).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao vincular turma.")
	}
	return helper.JsonCreated(c, "Turma vinculada.", pivo)
}

// DELETE /api/a/professores/:id/turmas/:turmaId
func (h *ProfessorController) DesvincularTurma(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	professorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}
	turmaID, err := uuid.Parse(c.Params("turmaId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	res := h.DB.Where("professor_turma_escola_id = ? AND professor_turma_professor_id = ? AND professor_turma_turma_id = ?",
		escolaID, professorID, turmaID).
		Delete(&tgModel.ProfessorTurmaModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao desvincular turma.")
	}
	if res.RowsAffected == 0 {
		return authz.ErrNaoEncontrado
	}
	return helper.JsonDeleted(c, "Turma desvinculada.", nil)
}

// POST /api/a/professores/:id/disciplinas
func (h *ProfessorController) VincularDisciplina(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	professorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	var req tgDTO.VincularDisciplinaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateTG.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	if err := h.exigeProfessor(escolaID, professorID); err != nil {
		return err
	}
	var disciplina disciplinaModel.DisciplinaModel
	if err := h.DB.Where("disciplina_id = ? AND disciplina_escola_id = ?", req.DisciplinaID, escolaID).
		First(&disciplina).Error; err != nil {
		return authz.ErrNaoEncontrado
	}

	var n int64
	h.DB.Model(&tgModel.ProfessorDisciplinaModel{}).
		Where("professor_disciplina_professor_id = ? AND professor_disciplina_disciplina_id = ?", professorID, req.DisciplinaID).
		Count(&n)
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Professor já vinculado à disciplina.")
	}

	pivo := tgModel.ProfessorDisciplinaModel{
		ProfessorDisciplinaEscolaID:     escolaID,
		ProfessorDisciplinaProfessorID:  professorID,
		ProfessorDisciplinaDisciplinaID: req.DisciplinaID,
	}
	if err := h.DB.Create(&pivo).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao vincular disciplina.")
	}
	return helper.JsonCreated(c, "Disciplina vinculada.", pivo)
}

// DELETE /api/a/professores/:id/disciplinas/:disciplinaId
func (h *ProfessorController) DesvincularDisciplina(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	professorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}
	disciplinaID, err := uuid.Parse(c.Params("disciplinaId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	res := h.DB.Where("professor_disciplina_escola_id = ? AND professor_disciplina_professor_id = ? AND professor_disciplina_disciplina_id = ?",
		escolaID, professorID, disciplinaID).
		Delete(&tgModel.ProfessorDisciplinaModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao desvincular disciplina.")
	}
	if res.RowsAffected == 0 {
		return authz.ErrNaoEncontrado
	}
	return helper.JsonDeleted(c, "Disciplina desvinculada.", nil)
}

func (h *ProfessorController) exigeProfessor(escolaID, professorID uuid.UUID) error {
	var n int64
	if err := h.DB.Model(&tgModel.ProfessorModel{}).
		Where("professor_id = ? AND professor_escola_id = ? AND professor_is_active = ?", professorID, escolaID, true).
		Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Erro interno.")
	}
	if n == 0 {
		return authz.ErrNaoEncontrado
	}
	return nil
}
