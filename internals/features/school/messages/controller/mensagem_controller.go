// internals/features/school/messages/controller/mensagem_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	mensagemDTO "escolar_backend/internals/features/school/messages/dto"
	mensagemModel "escolar_backend/internals/features/school/messages/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type MensagemController struct{ DB *gorm.DB }

func NewMensagemController(db *gorm.DB) *MensagemController {
	return &MensagemController{DB: db}
}

var validateMensagem = validator.New()

// GET /api/u/mensagens
func (h *MensagemController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeMensagens(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := scope(h.DB.Model(&mensagemModel.MensagemModel{}))

	if raw := c.Query("aluno_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			tx = tx.Where("mensagem_aluno_id = ?", id)
		}
	}
	if lida := c.Query("lida"); lida == "true" || lida == "false" {
		tx = tx.Where("mensagem_lida = ?", lida == "true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar mensagens.")
	}

	var mensagens []mensagemModel.MensagemModel
	if err := tx.Order("mensagem_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&mensagens).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar mensagens.")
	}
	return helper.JsonList(c, "OK", mensagens, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/mobile/mensagens
func (h *MensagemController) ListMobile(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeMensagens(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 15, 50)
	tx := scope(h.DB.Model(&mensagemModel.MensagemModel{}))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar mensagens.")
	}

	var mensagens []mensagemModel.MensagemModel
	if err := tx.Order("mensagem_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&mensagens).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar mensagens.")
	}
	return helper.JsonMobileList(c, mensagens, helper.BuildMobileMeta(total, p))
}

// GET /api/u/mensagens/:id
func (h *MensagemController) GetByID(c *fiber.Ctx) error {
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

	scope, err := authz.ScopeMensagens(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	var mensagem mensagemModel.MensagemModel
	err = scope(h.DB.Model(&mensagemModel.MensagemModel{})).
		Where("mensagem_id = ?", id).
		First(&mensagem).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return authz.ErrNaoEncontrado
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	return helper.JsonOK(c, "OK", mensagem)
}

// POST /api/u/mensagens — apenas professor; o aluno alvo tem que estar numa
// turma do professor.
func (h *MensagemController) Create(c *fiber.Ctx) error {
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

	var req mensagemDTO.CreateMensagemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateMensagem.Struct(req); err != nil {
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
	if !contemAluno(alunos, req.MensagemAlunoID) {
		return authz.ErrNaoEncontrado
	}
	if req.MensagemTurmaID != nil && !contemAluno(turmas, *req.MensagemTurmaID) {
		return authz.ErrNaoEncontrado
	}

	mensagem := req.ToModel(escolaID, ident.ProfessorID)
	if err := h.DB.Create(mensagem).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao enviar mensagem.")
	}
	return helper.JsonCreated(c, "Mensagem enviada.", mensagem)
}

// PUT /api/u/mensagens/:id
func (h *MensagemController) Update(c *fiber.Ctx) error {
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

	if err := authz.GateMutarMensagem(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	var req mensagemDTO.UpdateMensagemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateMensagem.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var mensagem mensagemModel.MensagemModel
	if err := h.DB.Where("mensagem_id = ?", id).First(&mensagem).Error; err != nil {
		return authz.ErrNaoEncontrado
	}

	req.ApplyToModel(&mensagem)
	if err := h.DB.Save(&mensagem).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar mensagem.")
	}
	return helper.JsonUpdated(c, "Mensagem atualizada.", mensagem)
}

// DELETE /api/u/mensagens/:id
func (h *MensagemController) Delete(c *fiber.Ctx) error {
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

	if err := authz.GateMutarMensagem(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	if err := h.DB.Where("mensagem_id = ?", id).Delete(&mensagemModel.MensagemModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover mensagem.")
	}
	return helper.JsonDeleted(c, "Mensagem removida.", fiber.Map{"mensagem_id": id})
}

// PATCH /api/u/mensagens/:id/lida — só o responsável do aluno alvo. Idempotente:
// repetir a chamada não altera o primeiro lida_em.
func (h *MensagemController) MarcarLida(c *fiber.Ctx) error {
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

	if err := authz.GateMarcarMensagemLida(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	agora := time.Now()
	// só escreve se ainda não lida; preserva o primeiro lida_em
	if err := h.DB.Model(&mensagemModel.MensagemModel{}).
		Where("mensagem_id = ? AND mensagem_lida = ?", id, false).
		Updates(map[string]any{
			"mensagem_lida":    true,
			"mensagem_lida_em": agora,
		}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao marcar como lida.")
	}

	var mensagem mensagemModel.MensagemModel
	if err := h.DB.Where("mensagem_id = ?", id).First(&mensagem).Error; err != nil {
		return authz.ErrNaoEncontrado
	}
	return helper.JsonUpdated(c, "Mensagem marcada como lida.", mensagem)
}

// POST /api/u/mensagens/:id/anexos — acrescenta um anexo à lista.
func (h *MensagemController) UploadAnexo(c *fiber.Ctx) error {
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

	if err := authz.GateMutarMensagem(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	fh, err := c.FormFile("anexo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Arquivo ausente.")
	}
	url, err := helper.SaveAnexo("mensagens", fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var mensagem mensagemModel.MensagemModel
	if err := h.DB.Where("mensagem_id = ?", id).First(&mensagem).Error; err != nil {
		return authz.ErrNaoEncontrado
	}

	var anexos []string
	if len(mensagem.MensagemAnexos) > 0 {
		_ = json.Unmarshal(mensagem.MensagemAnexos, &anexos)
	}
	anexos = append(anexos, url)
	raw, err := json.Marshal(anexos)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao salvar anexo.")
	}

	if err := h.DB.Model(&mensagemModel.MensagemModel{}).
		Where("mensagem_id = ?", id).
		Update("mensagem_anexos", datatypes.JSON(raw)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao salvar anexo.")
	}
	return helper.JsonUpdated(c, "Anexo salvo.", fiber.Map{"mensagem_anexos": anexos})
}

func contemAluno(ids []uuid.UUID, alvo uuid.UUID) bool {
	for _, id := range ids {
		if id == alvo {
			return true
		}
	}
	return false
}
