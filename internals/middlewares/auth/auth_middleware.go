// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"escolar_backend/internals/configs"
	authModel "escolar_backend/internals/features/users/auth/model"
	helper "escolar_backend/internals/helpers"
)

// AuthJWT valida o access token das rotas web e hidrata os Locals com
// user_id e claims básicas. A autorização em si (papel, escola) acontece
// depois, no middleware de escopo.
func AuthJWT(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token de acesso ausente.")
		}

		// Checa blacklist uma vez por requisição
		if c.Locals("token_checked") == nil {
			if err := ensureNotBlacklisted(db, tokenString); err != nil {
				return err
			}
			c.Locals("token_checked", true)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET vazio")
			return fiber.NewError(fiber.StatusInternalServerError, "Configuração de token ausente.")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Falha ao decodificar token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido.")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token expirado.")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id ausente na claim:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido.")
		}

		c.Locals("user_id", userID.String())
		helper.SetRawAccessToken(c, tokenString)
		storeBasicClaimsToLocals(c, claims)

		return c.Next()
	}
}

func ensureNotBlacklisted(db *gorm.DB, token string) error {
	hash := helper.HashOpaqueToken(configs.APITokenSecret, token)
	var existing authModel.TokenBlacklist
	err := db.Where("token = ? AND deleted_at IS NULL", hash).First(&existing).Error
	if err == nil {
		log.Println("[WARNING] Token presente na blacklist")
		return fiber.NewError(fiber.StatusUnauthorized, "Sessão encerrada. Faça login novamente.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[ERROR] Erro de banco ao consultar blacklist:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Erro interno.")
	}
	return nil
}
