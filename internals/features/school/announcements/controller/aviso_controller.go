// internals/features/school/announcements/controller/aviso_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	avisoDTO "escolar_backend/internals/features/school/announcements/dto"
	avisoModel "escolar_backend/internals/features/school/announcements/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type AvisoController struct{ DB *gorm.DB }

func NewAvisoController(db *gorm.DB) *AvisoController { return &AvisoController{DB: db} }

var validateAviso = validator.New()

// GET /api/u/avisos e /api/a/avisos
func (h *AvisoController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeAvisos(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 20, 100)
	tx := scope(h.DB.Model(&avisoModel.AvisoModel{}))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar avisos.")
	}

	var avisos []avisoModel.AvisoModel
	if err := tx.Order("aviso_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&avisos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar avisos.")
	}
	return helper.JsonList(c, "OK", avisos, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/mobile/avisos
func (h *AvisoController) ListMobile(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	scope, err := authz.ScopeAvisos(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	p := helper.ResolvePaging(c, 15, 50)
	tx := scope(h.DB.Model(&avisoModel.AvisoModel{}))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar avisos.")
	}

	var avisos []avisoModel.AvisoModel
	if err := tx.Order("aviso_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&avisos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar avisos.")
	}
	return helper.JsonMobileList(c, avisos, helper.BuildMobileMeta(total, p))
}

// GET /api/u/avisos/:id
func (h *AvisoController) GetByID(c *fiber.Ctx) error {
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

	scope, err := authz.ScopeAvisos(h.DB, ident, escolaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao resolver escopo.")
	}

	var aviso avisoModel.AvisoModel
	err = scope(h.DB.Model(&avisoModel.AvisoModel{})).
		Where("aviso_id = ?", id).
		First(&aviso).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return authz.ErrNaoEncontrado
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	return helper.JsonOK(c, "OK", aviso)
}

// POST /api/a/avisos — staff da escola publica; professor também pode,
// restrito às próprias turmas quando o aviso tem turma alvo.
func (h *AvisoController) Create(c *fiber.Ctx) error {
	ident, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	escolaID, err := helperAuth.GetEscolaID(c)
	if err != nil {
		return err
	}

	switch ident.Papel {
	case authz.PapelAdminGeral, authz.PapelAdminEscola, authz.PapelProfessor:
	default:
		return authz.ErrAcessoNegado
	}

	var req avisoDTO.CreateAvisoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAviso.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	if req.AvisoTurmaID != nil && ident.Papel == authz.PapelProfessor {
		turmas, err := authz.TurmaIDsDoProfessor(h.DB, escolaID, ident.ProfessorID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
		}
		achou := false
		for _, t := range turmas {
			if t == *req.AvisoTurmaID {
				achou = true
				break
			}
		}
		if !achou {
			return authz.ErrNaoEncontrado
		}
	}

	aviso := req.ToModel(escolaID, ident.UserID)
	if err := h.DB.Create(aviso).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao publicar aviso.")
	}
	return helper.JsonCreated(c, "Aviso publicado.", aviso)
}

// PUT /api/a/avisos/:id
func (h *AvisoController) Update(c *fiber.Ctx) error {
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

	if err := authz.GateMutarAviso(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	var req avisoDTO.UpdateAvisoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAviso.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var aviso avisoModel.AvisoModel
	if err := h.DB.Where("aviso_id = ?", id).First(&aviso).Error; err != nil {
		return authz.ErrNaoEncontrado
	}

	req.ApplyToModel(&aviso)
	if err := h.DB.Save(&aviso).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar aviso.")
	}
	return helper.JsonUpdated(c, "Aviso atualizado.", aviso)
}

// DELETE /api/a/avisos/:id
func (h *AvisoController) Delete(c *fiber.Ctx) error {
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

	if err := authz.GateMutarAviso(h.DB, ident, escolaID, id); err != nil {
		return err
	}

	if err := h.DB.Where("aviso_id = ?", id).Delete(&avisoModel.AvisoModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover aviso.")
	}
	return helper.JsonDeleted(c, "Aviso removido.", fiber.Map{"aviso_id": id})
}
