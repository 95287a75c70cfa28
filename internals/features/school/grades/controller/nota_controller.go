// internals/features/school/grades/controller/nota_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	notaDTO "escolar_backend/internals/features/school/grades/dto"
	notaModel "escolar_backend/internals/features/school/grades/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type NotaController struct{ DB *gorm.DB }

func NewNotaController(db *gorm.DB) *NotaController { return &NotaController{DB: db} }

var validateNota = validator.New()

// GET /api/u/notas
func (h *NotaController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeNotas(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := scope(h.DB.Model(&notaModel.NotaModel{}))

	if raw := c.Query("aluno_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			tx = tx.Where("nota_aluno_id = ?", id)
		}
	}
	if raw := c.Query("disciplina_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			tx = tx.Where("nota_disciplina_id = ?", id)
		}
	}
	if b := helper.QueryInt(c, "bimestre"); b >= 1 && b <= 4 {
		tx = tx.Where("nota_bimestre = ?", b)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar notas.")
	}

	var notas []notaModel.NotaModel
	if err := tx.Order("nota_bimestre ASC, nota_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&notas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar notas.")
	}
	return helper.JsonList(c, "OK", notas, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/mobile/notas
func (h *NotaController) ListMobile(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeNotas(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 15, 50)
	tx := scope(h.DB.Model(&notaModel.NotaModel{}))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar notas.")
	}

	var notas []notaModel.NotaModel
	if err := tx.Order("nota_bimestre ASC, nota_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&notas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar notas.")
	}
	return helper.JsonMobileList(c, notas, helper.BuildMobileMeta(total, p))
}

// GET /api/u/notas/:id
func (h *NotaController) GetByID(c *fiber.Ctx) error {
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

	scope, err := authz.ScopeNotas(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	var nota notaModel.NotaModel
	err = scope(h.DB.Model(&notaModel.NotaModel{})).
		Where("nota_id = ?", id).
		First(&nota).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return authz.ErrNaoEncontrado
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	return helper.JsonOK(c, "OK", nota)
}

// POST /api/u/notas — apenas professor; aluno e disciplina precisam estar no
// alcance do professor dentro da escola ativa.
func (h *NotaController) Create(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	if ident.Papel != authz.PapelProfessor {
		return authz.ErrAcessoNegado
	}

	var req notaDTO.CreateNotaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateNota.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	turmas, err := authz.TurmaIDsDoProfessor(h.DB, escolaID, ident.ProfessorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	alunos, err := authz.AlunoIDsDasTurmas(h.DB, escolaID, turmas)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	if !contemID(alunos, req.NotaAlunoID) {
		return authz.ErrNaoEncontrado
	}
	disciplinas, err := authz.DisciplinaIDsDoProfessor(h.DB, escolaID, ident.ProfessorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	if !contemID(disciplinas, req.NotaDisciplinaID) {
		return authz.ErrNaoEncontrado
	}

	nota := req.ToModel(escolaID, ident.ProfessorID)
	if err := h.DB.Create(nota).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao lançar nota.")
	}
	return helper.JsonCreated(c, "Nota lançada.", nota)
}

// PUT /api/u/notas/:id
func (h *NotaController) Update(c *fiber.Ctx) error {
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

	if err := authz.GateMutarNota(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	var req notaDTO.UpdateNotaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateNota.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var nota notaModel.NotaModel
	if err := h.DB.Where("nota_id = ?", id).First(&nota).Error; err != nil {
		return authz.ErrNaoEncontrado
	}

	req.ApplyToModel(&nota)
	if err := h.DB.Save(&nota).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar nota.")
	}
	return helper.JsonUpdated(c, "Nota atualizada.", nota)
}

// DELETE /api/u/notas/:id
func (h *NotaController) Delete(c *fiber.Ctx) error {
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

	if err := authz.GateMutarNota(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	if err := h.DB.Where("nota_id = ?", id).Delete(&notaModel.NotaModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover nota.")
	}
	return helper.JsonDeleted(c, "Nota removida.", fiber.Map{"nota_id": id})
}

func contemID(ids []uuid.UUID, alvo uuid.UUID) bool {
	for _, id := range ids {
		if id == alvo {
			return true
		}
	}
	return false
}
