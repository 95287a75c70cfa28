// internals/features/users/auth/controller/mobile_auth_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	escolaModel "escolar_backend/internals/features/school/escolas/model"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
	authDTO "escolar_backend/internals/features/users/auth/dto"
	"escolar_backend/internals/features/users/auth/service"
	userModel "escolar_backend/internals/features/users/user/model"
	helper "escolar_backend/internals/helpers"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type MobileAuthController struct{ DB *gorm.DB }

func NewMobileAuthController(db *gorm.DB) *MobileAuthController {
	return &MobileAuthController{DB: db}
}

const (
	mobileTypeTeacher     = "teacher"
	mobileTypeResponsavel = "responsavel"
)

// erro genérico único: CPF desconhecido, senha errada, conta inativa e
// papel não atendido respondem todos igual, sempre sob o campo cpf.
func mobileLoginRejeitado(c *fiber.Ctx) error {
	return helper.JsonValidationError(c, map[string][]string{
		"cpf": {"CPF ou senha inválidos."},
	})
}

// POST /api/mobile/login
func (h *MobileAuthController) Login(c *fiber.Ctx) error {
	var req authDTO.MobileLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}

	cpf := helper.CanonicalCPF(req.CPF)
	if cpf == "" || req.Senha == "" {
		return mobileLoginRejeitado(c)
	}

	var user userModel.UserModel
	err := h.DB.Where("user_cpf = ? AND user_is_active = ?", cpf, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return mobileLoginRejeitado(c)
	}
	if err != nil {
		log.Println("[ERROR] Erro de banco no login mobile:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.UserSenha), []byte(req.Senha)) != nil {
		return mobileLoginRejeitado(c)
	}

	userType, err := resolveMobileType(h.DB, user.UserID)
	if errors.Is(err, errSemPapelMobile) {
		return mobileLoginRejeitado(c)
	}
	if err != nil {
		log.Println("[ERROR] Erro de banco ao resolver papel mobile:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}

	now := time.Now()
	// best-effort; não falha a requisição se o update não passar
	if err := h.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", user.UserID).
		Update("user_last_login_at", now).Error; err != nil {
		log.Println("[WARNING] Falha ao atualizar last_login_at:", err)
	}

	token, err := service.IssueApiToken(h.DB, user.UserID, c.Get("User-Agent"))
	if err != nil {
		log.Println("[ERROR] Falha ao emitir api token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao emitir token.")
	}

	return helper.JsonOK(c, "Login realizado com sucesso.", authDTO.MobileLoginResponse{
		Token: token,
		User:  buildMobileUser(&user, userType),
	})
}

// GET /api/mobile/me
func (h *MobileAuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := h.DB.Where("user_id = ? AND user_is_active = ?", userID, true).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Usuário não encontrado ou inativo.")
	}

	userType, err := resolveMobileType(h.DB, user.UserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Apenas professores e responsáveis podem usar esta interface.")
	}

	escolas, err := escolasVinculadas(h.DB, user.UserID)
	if err != nil {
		log.Println("[ERROR] Falha ao listar escolas do usuário:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno.")
	}

	return helper.JsonOK(c, "OK", authDTO.MobileMeResponse{
		User:    buildMobileUser(&user, userType),
		Escolas: escolas,
	})
}

// POST /api/mobile/logout — revoga somente o token apresentado.
func (h *MobileAuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetBearerToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token de acesso ausente.")
	}
	if err := service.RevokeApiToken(h.DB, raw); err != nil {
		log.Println("[ERROR] Falha ao revogar api token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro ao encerrar sessão.")
	}
	return helper.JsonOK(c, "Sessão encerrada.", nil)
}

/* ===================== internos ===================== */

// errSemPapelMobile separa a recusa deliberada (resposta genérica 422) de um
// erro real de infraestrutura (500).
var errSemPapelMobile = errors.New("papel não atendido pela interface mobile")

// resolveMobileType: professor ativo em qualquer escola → teacher; senão
// responsável em qualquer escola → responsavel; senão recusa.
func resolveMobileType(db *gorm.DB, userID uuid.UUID) (string, error) {
	var n int64
	if err := db.Model(&tgModel.ProfessorModel{}).
		Where("professor_user_id = ? AND professor_is_active = ?", userID, true).
		Count(&n).Error; err != nil {
		return "", err
	}
	if n > 0 {
		return mobileTypeTeacher, nil
	}
	if err := db.Model(&tgModel.ResponsavelModel{}).
		Where("responsavel_user_id = ?", userID).
		Count(&n).Error; err != nil {
		return "", err
	}
	if n > 0 {
		return mobileTypeResponsavel, nil
	}
	return "", errSemPapelMobile
}

func buildMobileUser(u *userModel.UserModel, userType string) authDTO.MobileUser {
	return authDTO.MobileUser{
		ID:           u.UserID.String(),
		NomeCompleto: u.UserNome,
		Email:        u.UserEmail,
		CPF:          u.UserCPF,
		Telefone:     u.UserTelefone,
		AvatarURL:    u.UserAvatarURL,
		Type:         userType,
	}
}

func escolasVinculadas(db *gorm.DB, userID uuid.UUID) ([]authDTO.MobileEscola, error) {
	var escolaIDs []uuid.UUID

	var profIDs []uuid.UUID
	if err := db.Model(&tgModel.ProfessorModel{}).
		Where("professor_user_id = ? AND professor_is_active = ?", userID, true).
		Distinct().Pluck("professor_escola_id", &profIDs).Error; err != nil {
		return nil, err
	}
	escolaIDs = append(escolaIDs, profIDs...)

	var respIDs []uuid.UUID
	if err := db.Model(&tgModel.ResponsavelModel{}).
		Where("responsavel_user_id = ?", userID).
		Distinct().Pluck("responsavel_escola_id", &respIDs).Error; err != nil {
		return nil, err
	}
	escolaIDs = append(escolaIDs, respIDs...)

	if len(escolaIDs) == 0 {
		return []authDTO.MobileEscola{}, nil
	}

	var escolas []escolaModel.EscolaModel
	if err := db.Where("escola_id IN ? AND escola_is_active = ?", escolaIDs, true).
		Order("escola_nome").Find(&escolas).Error; err != nil {
		return nil, err
	}

	out := make([]authDTO.MobileEscola, 0, len(escolas))
	for _, e := range escolas {
		out = append(out, authDTO.MobileEscola{
			ID:   e.EscolaID.String(),
			Nome: e.EscolaNome,
			Slug: e.EscolaSlug,
		})
	}
	return out, nil
}
