// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// validateTokenExpiry valida a claim exp manualmente, com uma folga
// (leeway) para relógios desalinhados.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	raw, ok := claims["exp"]
	if !ok {
		return errors.New("claim exp ausente")
	}
	var exp time.Time
	switch v := raw.(type) {
	case float64:
		exp = time.Unix(int64(v), 0)
	case int64:
		exp = time.Unix(v, 0)
	default:
		return errors.New("claim exp com tipo inesperado")
	}
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expirado")
	}
	return nil
}

// extractUserID lê e valida a claim "id" (UUID do usuário).
func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["id"].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, errors.New("claim id ausente")
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errors.New("claim id não é um UUID")
	}
	return id, nil
}

// storeBasicClaimsToLocals copia claims informativas para os Locals.
// A escola ativa (se presente no token) vira apenas uma dica; quem
// decide é o middleware de escopo, consultando o banco.
func storeBasicClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if nome, ok := claims["user_nome"].(string); ok && nome != "" {
		c.Locals("user_nome", nome)
	}
	if escolaID, ok := claims["escola_id"].(string); ok && escolaID != "" {
		if _, err := uuid.Parse(escolaID); err == nil {
			c.Locals("escola_id_claim", escolaID)
		}
	}
}
