// internals/features/school/students/controller/matricula_controller.go
package controller

import (
	"errors"

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

// MatriculaController — staff da escola (/api/a).
type MatriculaController struct{ DB *gorm.DB }

func NewMatriculaController(db *gorm.DB) *MatriculaController {
	return &MatriculaController{DB: db}
}

// GET /api/a/matriculas?aluno_id=&turma_id=&status=
func (h *MatriculaController) List(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := h.DB.Model(&alunoModel.MatriculaModel{}).
		Where("matricula_escola_id = ?", escolaID)

	if raw := c.Query("aluno_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			tx = tx.Where("matricula_aluno_id = ?", id)
		}
	}
	if raw := c.Query("turma_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			tx = tx.Where("matricula_turma_id = ?", id)
		}
	}
	if status := c.Query("status"); status != "" {
		tx = tx.Where("matricula_status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar matrículas.")
	}

	var matriculas []alunoModel.MatriculaModel
	if err := tx.Order("matricula_data DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&matriculas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar matrículas.")
	}
	return helper.JsonList(c, "OK", matriculas, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/matriculas
func (h *MatriculaController) Create(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	var req alunoDTO.CreateMatriculaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAluno.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	matricula, err := service.Matricular(h.DB, escolaID, req.AlunoID, req.TurmaID)
	if err != nil {
		return matriculaErro(c, err)
	}
	return helper.JsonCreated(c, "Matrícula criada.", matricula)
}

// POST /api/a/alunos/:id/rematricula — troca de turma transacional.
func (h *MatriculaController) Rematricular(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	alunoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	var req alunoDTO.RematriculaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAluno.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	matricula, err := service.Rematricular(h.DB, escolaID, alunoID, req.TurmaID)
	if err != nil {
		return matriculaErro(c, err)
	}
	return helper.JsonOK(c, "Rematrícula concluída.", matricula)
}

// DELETE /api/a/matriculas/:id — encerra (status inativa), não apaga.
func (h *MatriculaController) Encerrar(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	res := h.DB.Model(&alunoModel.MatriculaModel{}).
		Where("matricula_id = ? AND matricula_escola_id = ? AND matricula_status = ?",
			id, escolaID, alunoModel.MatriculaStatusAtiva).
		Update("matricula_status", alunoModel.MatriculaStatusInativa)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao encerrar matrícula.")
	}
	if res.RowsAffected == 0 {
		return authz.ErrNaoEncontrado
	}
	return helper.JsonOK(c, "Matrícula encerrada.", fiber.Map{"matricula_id": id})
}

func matriculaErro(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAlunoNaoEncontrado):
		return authz.ErrNaoEncontrado
	case errors.Is(err, service.ErrTurmaForaDaEscola):
		return helper.JsonError(c, fiber.StatusConflict, "Turma não pertence a esta escola.")
	case errors.Is(err, service.ErrMatriculaDuplicada):
		return helper.JsonError(c, fiber.StatusConflict, "Aluno já matriculado nesta turma.")
	case errors.Is(err, service.ErrSemMatriculaAtiva):
		return helper.JsonError(c, fiber.StatusConflict, "Aluno não possui matrícula ativa.")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao processar matrícula.")
	}
}
