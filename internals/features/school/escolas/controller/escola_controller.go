// internals/features/school/escolas/controller/escola_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	escolaDTO "escolar_backend/internals/features/school/escolas/dto"
	escolaModel "escolar_backend/internals/features/school/escolas/model"
	userModel "escolar_backend/internals/features/users/user/model"
	helper "escolar_backend/internals/helpers"
)

// EscolaController — CRUD de tenants, admin geral apenas (guard na rota).
type EscolaController struct{ DB *gorm.DB }

func NewEscolaController(db *gorm.DB) *EscolaController { return &EscolaController{DB: db} }

var validateEscola = validator.New()

// GET /api/o/escolas
func (h *EscolaController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&escolaModel.EscolaModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(escola_nome) LIKE ? OR LOWER(escola_slug) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar escolas.")
	}

	var escolas []escolaModel.EscolaModel
	if err := tx.Order("escola_nome").
		Limit(p.Limit).Offset(p.Offset).
		Find(&escolas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar escolas.")
	}
	return helper.JsonList(c, "OK", escolas, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/o/escolas/:id
func (h *EscolaController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}
	var escola escolaModel.EscolaModel
	if err := h.DB.Where("escola_id = ?", id).First(&escola).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Escola não encontrada.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	return helper.JsonOK(c, "OK", escola)
}

// POST /api/o/escolas
func (h *EscolaController) Create(c *fiber.Ctx) error {
	var req escolaDTO.CreateEscolaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateEscola.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	escola := req.ToModel()
	if err := h.DB.Create(escola).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Slug já em uso.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao criar escola.")
	}
	return helper.JsonCreated(c, "Escola criada.", escola)
}

// PUT /api/o/escolas/:id
func (h *EscolaController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	var req escolaDTO.UpdateEscolaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateEscola.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var escola escolaModel.EscolaModel
	if err := h.DB.Where("escola_id = ?", id).First(&escola).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Escola não encontrada.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}

	req.ApplyToModel(&escola)
	if err := h.DB.Save(&escola).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Slug já em uso.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar escola.")
	}
	return helper.JsonUpdated(c, "Escola atualizada.", escola)
}

// DELETE /api/o/escolas/:id (soft delete)
func (h *EscolaController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}
	res := h.DB.Where("escola_id = ?", id).Delete(&escolaModel.EscolaModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover escola.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Escola não encontrada.")
	}
	return helper.JsonDeleted(c, "Escola removida.", fiber.Map{"escola_id": id})
}

/* ===================== membership (escola_usuarios) ===================== */

// POST /api/o/escolas/:id/admins — vincula um usuário como admin da escola.
func (h *EscolaController) AddAdmin(c *fiber.Ctx) error {
	escolaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	var req escolaDTO.AddEscolaUsuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateEscola.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var user userModel.UserModel
	if err := h.DB.Where("user_id = ? AND user_is_active = ?", req.UserID, true).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Registro não encontrado.")
	}

	// reativa vínculo existente em vez de duplicar
	var existing escolaModel.EscolaUsuarioModel
	err = h.DB.Where("escola_usuario_escola_id = ? AND escola_usuario_user_id = ?", escolaID, req.UserID).
		First(&existing).Error
	switch {
	case err == nil:
		existing.EscolaUsuarioIsActive = true
		if err := h.DB.Save(&existing).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao vincular usuário.")
		}
		return helper.JsonOK(c, "Vínculo reativado.", existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		vinculo := escolaModel.EscolaUsuarioModel{
			EscolaUsuarioEscolaID: escolaID,
			EscolaUsuarioUserID:   req.UserID,
			EscolaUsuarioPapel:    escolaModel.EscolaUsuarioPapelAdminEscola,
			EscolaUsuarioIsActive: true,
		}
		if err := h.DB.Create(&vinculo).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao vincular usuário.")
		}
		return helper.JsonCreated(c, "Usuário vinculado à escola.", vinculo)
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
}

// DELETE /api/o/escolas/:id/admins/:userId — desativa o vínculo.
func (h *EscolaController) RemoveAdmin(c *fiber.Ctx) error {
	escolaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	res := h.DB.Model(&escolaModel.EscolaUsuarioModel{}).
		Where("escola_usuario_escola_id = ? AND escola_usuario_user_id = ? AND escola_usuario_is_active = ?", escolaID, userID, true).
		Update("escola_usuario_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao desvincular usuário.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Registro não encontrado.")
	}
	return helper.JsonDeleted(c, "Vínculo desativado.", fiber.Map{
		"escola_id": escolaID,
		"user_id":   userID,
	})
}
