// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authDTO "escolar_backend/internals/features/users/auth/dto"
	"escolar_backend/internals/features/users/auth/service"
	userModel "escolar_backend/internals/features/users/user/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type AuthController struct{ DB *gorm.DB }

func NewAuthController(db *gorm.DB) *AuthController { return &AuthController{DB: db} }

var validateAuth = validator.New()

// POST /api/auth/login
// Aceita e-mail ou CPF no identificador. Falhas de credencial nunca
// distinguem "não existe" de "senha errada".
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	user, err := findUserByIdentifier(h.DB, req.Identificador)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciais inválidas.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserSenha), []byte(req.Senha)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciais inválidas.")
	}

	var escolaID *uuid.UUID
	if req.EscolaID != "" {
		if id, err := uuid.Parse(req.EscolaID); err == nil {
			escolaID = &id
		}
	}

	access, refresh, err := service.IssueTokenPair(h.DB, user, escolaID, c.Get("User-Agent"), c.IP())
	if err != nil {
		log.Println("[ERROR] Falha ao emitir tokens:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao emitir tokens.")
	}

	now := time.Now()
	h.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", user.UserID).
		Update("user_last_login_at", now)

	setAuthCookies(c, access, refresh, now)

	return helper.JsonOK(c, "Login realizado com sucesso.", authDTO.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(service.AccessTokenTTL.Seconds()),
	})
}

// POST /api/auth/refresh — rotação: o refresh apresentado é revogado e um
// novo par é emitido.
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req authDTO.RefreshRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		if v := strings.TrimSpace(c.Cookies("refresh_token")); v != "" {
			req.RefreshToken = v
		} else {
			return helper.JsonError(c, fiber.StatusBadRequest, "refresh_token ausente.")
		}
	}

	userID, err := service.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token inválido.")
	}
	if err := service.RotateRefreshToken(h.DB, userID, req.RefreshToken); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token inválido.")
	}

	var user userModel.UserModel
	if err := h.DB.Where("user_id = ? AND user_is_active = ?", userID, true).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Usuário não encontrado ou inativo.")
	}

	access, refresh, err := service.IssueTokenPair(h.DB, &user, nil, c.Get("User-Agent"), c.IP())
	if err != nil {
		log.Println("[ERROR] Falha ao rotacionar tokens:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao emitir tokens.")
	}

	setAuthCookies(c, access, refresh, time.Now())

	return helper.JsonOK(c, "Sessão renovada.", authDTO.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(service.AccessTokenTTL.Seconds()),
	})
}

// POST /api/auth/logout — access token vai para a blacklist até expirar.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token de acesso ausente.")
	}
	if err := service.BlacklistAccessToken(h.DB, raw); err != nil {
		log.Println("[ERROR] Falha ao registrar blacklist:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao encerrar sessão.")
	}
	clearAuthCookies(c)
	return helper.JsonOK(c, "Sessão encerrada.", nil)
}

// POST /api/auth/change-password
func (h *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}

	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.MapValidationErrors(err))
	}

	var user userModel.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Usuário não encontrado.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserSenha), []byte(req.SenhaAtual)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Senha atual incorreta.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.SenhaNova), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar senha.")
	}
	if err := h.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Update("user_senha", string(hash)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao atualizar senha.")
	}
	return helper.JsonUpdated(c, "Senha alterada com sucesso.", nil)
}

// GET /api/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	var user userModel.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registro não encontrado.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}
	return helper.JsonOK(c, "OK", user)
}

/* ===================== internos ===================== */

func findUserByIdentifier(db *gorm.DB, identifier string) (*userModel.UserModel, error) {
	identifier = strings.TrimSpace(identifier)
	var user userModel.UserModel

	q := db.Where("user_is_active = ?", true)
	if cpf := helper.CanonicalCPF(identifier); len(cpf) == 11 && !strings.Contains(identifier, "@") {
		q = q.Where("user_cpf = ?", cpf)
	} else {
		q = q.Where("LOWER(user_email) = LOWER(?)", identifier)
	}
	if err := q.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func setAuthCookies(c *fiber.Ctx, access, refresh string, now time.Time) {
	secure := !strings.HasPrefix(c.BaseURL(), "http://localhost")
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		Expires:  now.Add(service.AccessTokenTTL),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Expires:  now.Add(service.RefreshTokenTTL),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, Path: "/"})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, Path: "/api/auth"})
}
