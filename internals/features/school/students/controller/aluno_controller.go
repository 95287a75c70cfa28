// internals/features/school/students/controller/aluno_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	alunoDTO "escolar_backend/internals/features/school/students/dto"
	alunoModel "escolar_backend/internals/features/school/students/model"
	"escolar_backend/internals/features/school/students/service"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type AlunoController struct{ DB *gorm.DB }

func NewAlunoController(db *gorm.DB) *AlunoController { return &AlunoController{DB: db} }

var validateAluno = validator.New()

// GET /api/u/alunos — escopada: responsável vê os seus, professor os das
// suas turmas, staff todos da escola.
func (h *AlunoController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeAlunos(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := scope(h.DB.Model(&alunoModel.AlunoModel{}))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar alunos.")
	}

	var alunos []alunoModel.AlunoModel
	if err := tx.Order("aluno_nome").
		Limit(p.Limit).Offset(p.Offset).
		Find(&alunos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar alunos.")
	}
	return helper.JsonList(c, "OK", alunos, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/u/alunos/:id
func (h *AlunoController) GetByID(c *fiber.Ctx) error {
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

	scope, err := authz.ScopeAlunos(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	var aluno alunoModel.AlunoModel
	err = scope(h.DB.Model(&alunoModel.AlunoModel{})).
		Where("aluno_id = ?", id).
		First(&aluno).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return authz.ErrNaoEncontrado
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	return helper.JsonOK(c, "OK", aluno)
}

// POST /api/a/alunos — cria aluno; com responsavel_id no corpo, o vínculo
// sai na mesma transação.
func (h *AlunoController) Create(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	var req alunoDTO.CreateAlunoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAluno.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	aluno := req.ToModel(escolaID)
	err = service.CriarAlunoComResponsavel(h.DB, aluno, req.ResponsavelID, req.Principal)
	if errors.Is(err, service.ErrVinculoInvalido) {
		return helper.JsonError(c, fiber.StatusConflict, "Responsável não pertence a esta escola.")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao criar aluno.")
	}
	return helper.JsonCreated(c, "Aluno criado.", aluno)
}

// PUT /api/a/alunos/:id
func (h *AlunoController) Update(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	var req alunoDTO.UpdateAlunoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAluno.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var aluno alunoModel.AlunoModel
	err = h.DB.Where("aluno_id = ? AND aluno_escola_id = ?", id, escolaID).First(&aluno).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return authz.ErrNaoEncontrado
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}

	req.ApplyToModel(&aluno)
	if err := h.DB.Save(&aluno).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar aluno.")
	}
	return helper.JsonUpdated(c, "Aluno atualizado.", aluno)
}

// DELETE /api/a/alunos/:id (soft delete)
func (h *AlunoController) Delete(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	res := h.DB.Where("aluno_id = ? AND aluno_escola_id = ?", id, escolaID).
		Delete(&alunoModel.AlunoModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover aluno.")
	}
	if res.RowsAffected == 0 {
		return authz.ErrNaoEncontrado
	}
	return helper.JsonDeleted(c, "Aluno removido.", fiber.Map{"aluno_id": id})
}
