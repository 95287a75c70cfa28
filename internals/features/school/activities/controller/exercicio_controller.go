// internals/features/school/activities/controller/exercicio_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	atividadeDTO "escolar_backend/internals/features/school/activities/dto"
	atividadeModel "escolar_backend/internals/features/school/activities/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type ExercicioController struct{ DB *gorm.DB }

func NewExercicioController(db *gorm.DB) *ExercicioController {
	return &ExercicioController{DB: db}
}

// GET /api/u/exercicios
func (h *ExercicioController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeExercicios(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := scope(h.DB.Model(&atividadeModel.ExercicioModel{}))

	if raw := c.Query("turma_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			tx = tx.Where("exercicio_turma_id = ?", id)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar exercícios.")
	}

	var exercicios []atividadeModel.ExercicioModel
	if err := tx.Order("exercicio_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&exercicios).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar exercícios.")
	}
	return helper.JsonList(c, "OK", exercicios, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/mobile/exercicios
func (h *ExercicioController) ListMobile(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeExercicios(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 15, 50)
	tx := scope(h.DB.Model(&atividadeModel.ExercicioModel{}))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar exercícios.")
	}

	var exercicios []atividadeModel.ExercicioModel
	if err := tx.Order("exercicio_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&exercicios).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar exercícios.")
	}
	return helper.JsonMobileList(c, exercicios, helper.BuildMobileMeta(total, p))
}

// GET /api/u/exercicios/:id
func (h *ExercicioController) GetByID(c *fiber.Ctx) error {
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

	scope, err := authz.ScopeExercicios(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	var exercicio atividadeModel.ExercicioModel
	err = scope(h.DB.Model(&atividadeModel.ExercicioModel{})).
		Where("exercicio_id = ?", id).
		First(&exercicio).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return authz.ErrNaoEncontrado
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	return helper.JsonOK(c, "OK", exercicio)
}

// POST /api/u/exercicios — apenas professor.
func (h *ExercicioController) Create(c *fiber.Ctx) error {
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

	var req atividadeDTO.CreateExercicioRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAtividade.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	turmas, err := authz.TurmaIDsDoProfessor(h.DB, escolaID, ident.ProfessorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	if !contemUUID(turmas, req.ExercicioTurmaID) {
		return authz.ErrNaoEncontrado
	}

	exercicio := req.ToModel(escolaID, ident.ProfessorID)
	if err := h.DB.Create(exercicio).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao criar exercício.")
	}
	return helper.JsonCreated(c, "Exercício criado.", exercicio)
}

// PUT /api/u/exercicios/:id
func (h *ExercicioController) Update(c *fiber.Ctx) error {
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

	if err := authz.GateMutarExercicio(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	var req atividadeDTO.UpdateExercicioRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAtividade.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var exercicio atividadeModel.ExercicioModel
	if err := h.DB.Where("exercicio_id = ?", id).First(&exercicio).Error; err != nil {
		return authz.ErrNaoEncontrado
	}

	req.ApplyToModel(&exercicio)
	if err := h.DB.Save(&exercicio).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar exercício.")
	}
	return helper.JsonUpdated(c, "Exercício atualizado.", exercicio)
}

// DELETE /api/u/exercicios/:id
func (h *ExercicioController) Delete(c *fiber.Ctx) error {
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

	if err := authz.GateMutarExercicio(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	if err := h.DB.Where("exercicio_id = ?", id).Delete(&atividadeModel.ExercicioModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover exercício.")
	}
	return helper.JsonDeleted(c, "Exercício removido.", fiber.Map{"exercicio_id": id})
}

// POST /api/u/exercicios/:id/anexo
func (h *ExercicioController) UploadAnexo(c *fiber.Ctx) error {
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

	if err := authz.GateMutarExercicio(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	fh, err := c.FormFile("anexo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Arquivo ausente.")
	}
	url, err := helper.SaveAnexo("exercicios", fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.DB.Model(&atividadeModel.ExercicioModel{}).
		Where("exercicio_id = ?", id).
		Update("exercicio_anexo_url", url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao salvar anexo.")
	}
	return helper.JsonUpdated(c, "Anexo salvo.", fiber.Map{"exercicio_anexo_url": url})
}
