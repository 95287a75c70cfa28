// internals/features/school/activities/controller/prova_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	atividadeDTO "escolar_backend/internals/features/school/activities/dto"
	atividadeModel "escolar_backend/internals/features/school/activities/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type ProvaController struct{ DB *gorm.DB }

func NewProvaController(db *gorm.DB) *ProvaController { return &ProvaController{DB: db} }

var validateAtividade = validator.New()

// GET /api/u/provas
func (h *ProvaController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeProvas(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := scope(h.DB.Model(&atividadeModel.ProvaModel{}))

	if raw := c.Query("turma_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			tx = tx.Where("prova_turma_id = ?", id)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar provas.")
	}

	var provas []atividadeModel.ProvaModel
	if err := tx.Order("prova_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&provas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar provas.")
	}
	return helper.JsonList(c, "OK", provas, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/mobile/provas — mesmo escopo, envelope {data, meta}.
func (h *ProvaController) ListMobile(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeProvas(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 15, 50)
	tx := scope(h.DB.Model(&atividadeModel.ProvaModel{}))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar provas.")
	}

	var provas []atividadeModel.ProvaModel
	if err := tx.Order("prova_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&provas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar provas.")
	}
	return helper.JsonMobileList(c, provas, helper.BuildMobileMeta(total, p))
}

// GET /api/u/provas/:id
func (h *ProvaController) GetByID(c *fiber.Ctx) error {
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

	scope, err := authz.ScopeProvas(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	var prova atividadeModel.ProvaModel
	err = scope(h.DB.Model(&atividadeModel.ProvaModel{})).
		Where("prova_id = ?", id).
		First(&prova).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return authz.ErrNaoEncontrado
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	return helper.JsonOK(c, "OK", prova)
}

// POST /api/u/provas — apenas professor (autoria vem da identidade).
func (h *ProvaController) Create(c *fiber.Ctx) error {
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

	var req atividadeDTO.CreateProvaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAtividade.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	// a turma alvo precisa estar no escopo do professor
	turmas, err := authz.TurmaIDsDoProfessor(h.DB, escolaID, ident.ProfessorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	if !contemUUID(turmas, req.ProvaTurmaID) {
		return authz.ErrNaoEncontrado
	}

	prova := req.ToModel(escolaID, ident.ProfessorID)
	if err := h.DB.Create(prova).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao criar prova.")
	}
	return helper.JsonCreated(c, "Prova criada.", prova)
}

// PUT /api/u/provas/:id — gate de autoria antes de qualquer escrita.
func (h *ProvaController) Update(c *fiber.Ctx) error {
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

	if err := authz.GateMutarProva(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	var req atividadeDTO.UpdateProvaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAtividade.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var prova atividadeModel.ProvaModel
	if err := h.DB.Where("prova_id = ?", id).First(&prova).Error; err != nil {
		return authz.ErrNaoEncontrado
	}

	req.ApplyToModel(&prova)
	if err := h.DB.Save(&prova).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar prova.")
	}
	return helper.JsonUpdated(c, "Prova atualizada.", prova)
}

// DELETE /api/u/provas/:id
func (h *ProvaController) Delete(c *fiber.Ctx) error {
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

	if err := authz.GateMutarProva(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	if err := h.DB.Where("prova_id = ?", id).Delete(&atividadeModel.ProvaModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover prova.")
	}
	return helper.JsonDeleted(c, "Prova removida.", fiber.Map{"prova_id": id})
}

// POST /api/u/provas/:id/anexo — upload de anexo (PDF/imagem).
func (h *ProvaController) UploadAnexo(c *fiber.Ctx) error {
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

	if err := authz.GateMutarProva(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	fh, err := c.FormFile("anexo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Arquivo ausente.")
	}
	url, err := helper.SaveAnexo("provas", fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.DB.Model(&atividadeModel.ProvaModel{}).
		Where("prova_id = ?", id).
		Update("prova_anexo_url", url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao salvar anexo.")
	}
	return helper.JsonUpdated(c, "Anexo salvo.", fiber.Map{"prova_anexo_url": url})
}

func contemUUID(ids []uuid.UUID, alvo uuid.UUID) bool {
	for _, id := range ids {
		if id == alvo {
			return true
		}
	}
	return false
}
