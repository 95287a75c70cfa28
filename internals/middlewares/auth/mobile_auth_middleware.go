// internals/middlewares/auth/mobile_auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"escolar_backend/internals/configs"
	authModel "escolar_backend/internals/features/users/auth/model"
	helper "escolar_backend/internals/helpers"
)

// MobileAuth autentica a API mobile por bearer token opaco (tabela
// api_tokens). O lookup é pelo HMAC do token; tokens revogados ou
// expirados são recusados.
func MobileAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetBearerToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token de acesso ausente.")
		}

		hash := helper.HashOpaqueToken(configs.APITokenSecret, raw)

		var token authModel.ApiToken
		err := db.Where("api_token_hash = ?", hash).First(&token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido.")
		}
		if err != nil {
			log.Println("[ERROR] Erro de banco ao consultar api_tokens:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Erro interno.")
		}

		now := time.Now()
		if token.ApiTokenRevokedAt != nil || now.After(token.ApiTokenExpiresAt) {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido.")
		}

		c.Locals("user_id", token.ApiTokenUserID.String())
		c.Locals("api_token_id", token.ApiTokenID)
		helper.SetRawAccessToken(c, raw)

		// best-effort; não falha a requisição se o update não passar
		if err := db.Model(&authModel.ApiToken{}).
			Where("api_token_id = ?", token.ApiTokenID).
			Update("api_token_last_used_at", now).Error; err != nil {
			log.Println("[WARNING] Falha ao atualizar last_used_at:", err)
		}

		return c.Next()
	}
}
