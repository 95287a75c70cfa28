// internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userDTO "escolar_backend/internals/features/users/user/dto"
	userModel "escolar_backend/internals/features/users/user/model"
	helper "escolar_backend/internals/helpers"
)

// UserController — CRUD de usuários da plataforma (grupo /api/o,
// admin geral apenas; o guard fica na rota).
type UserController struct{ DB *gorm.DB }

func NewUserController(db *gorm.DB) *UserController { return &UserController{DB: db} }

var validateUser = validator.New()

// GET /api/o/users
func (h *UserController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&userModel.UserModel{})

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(user_nome) LIKE ? OR LOWER(user_email) LIKE ?", like, like)
	}
	if cpf := helper.CanonicalCPF(c.Query("cpf")); cpf != "" {
		tx = tx.Where("user_cpf = ?", cpf)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar usuários.")
	}

	var users []userModel.UserModel
	if err := tx.Order("user_nome").
		Limit(p.Limit).Offset(p.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao listar usuários.")
	}

	return helper.JsonList(c, "OK", users, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/o/users/:id
func (h *UserController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}
	var user userModel.UserModel
	if err := h.DB.Where("user_id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registro não encontrado.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	return helper.JsonOK(c, "OK", user)
}

// POST /api/o/users
func (h *UserController) Create(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateUser.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}
	if !helper.ValidCPF(helper.CanonicalCPF(req.UserCPF)) {
		return helper.JsonValidationError(c, map[string][]string{
			"user_cpf": {"CPF inválido."},
		})
	}

	user, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao criar usuário.")
	}
	if err := h.DB.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "E-mail ou CPF já cadastrado.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao criar usuário.")
	}
	return helper.JsonCreated(c, "Usuário criado.", user)
}

// PUT /api/o/users/:id
func (h *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateUser.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var user userModel.UserModel
	if err := h.DB.Where("user_id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registro não encontrado.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}

	req.ApplyToModel(&user)
	if err := h.DB.Save(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "E-mail já cadastrado.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar usuário.")
	}
	return helper.JsonUpdated(c, "Usuário atualizado.", user)
}

// DELETE /api/o/users/:id (soft delete)
func (h *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido.")
	}
	res := h.DB.Where("user_id = ?", id).Delete(&userModel.UserModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao remover usuário.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Registro não encontrado.")
	}
	return helper.JsonDeleted(c, "Usuário removido.", fiber.Map{"user_id": id})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
