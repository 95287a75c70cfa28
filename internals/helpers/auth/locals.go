// internals/helpers/auth/locals.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"escolar_backend/internals/authz"
)

// Chaves usadas nos Locals do Fiber. Todo acesso ao contexto de
// requisição passa por aqui para evitar strings soltas nos controllers.
const (
	LocUserID   = "user_id"
	LocUserNome = "user_nome"
	LocIdentity = "identity"
	LocEscolaID = "escola_id"
)

// GetUserID lê o user_id hidratado pelo middleware de autenticação.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Usuário não autenticado.")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Usuário não autenticado.")
	}
	return id, nil
}

// GetIdentity devolve a identidade resolvida pelo middleware de escopo.
// Handlers protegidos podem assumir que ela existe; a falta dela indica
// rota mal montada (sem UseEscolaScope na cadeia).
func GetIdentity(c *fiber.Ctx) (authz.Identity, error) {
	ident, ok := c.Locals(LocIdentity).(authz.Identity)
	if !ok {
		return authz.Identity{}, fiber.NewError(fiber.StatusInternalServerError, "Contexto de acesso ausente.")
	}
	return ident, nil
}

// GetEscolaID devolve a escola ativa da requisição.
func GetEscolaID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(LocEscolaID).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, authz.ErrEscolaNaoEncontrada
	}
	return id, nil
}

// EscolaHintFromRequest monta a dica de escola ativa a partir da
// requisição, nesta ordem: claim do token, header X-Active-Escola-ID,
// slug de subdomínio (escola.app.escolar.dev.br).
func EscolaHintFromRequest(c *fiber.Ctx) authz.EscolaHint {
	var hint authz.EscolaHint

	if raw, ok := c.Locals("escola_id_claim").(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			hint.ID = id
			return hint
		}
	}

	if raw := strings.TrimSpace(c.Get("X-Active-Escola-ID")); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			hint.ID = id
			return hint
		}
	}

	if slug := subdomainSlug(c.Hostname()); slug != "" {
		hint.Slug = slug
	}
	return hint
}

// subdomainSlug extrai o primeiro rótulo do host quando ele tem cara de
// subdomínio de escola. Hosts conhecidos da própria aplicação não contam.
func subdomainSlug(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return ""
	}
	first := parts[0]
	switch first {
	case "www", "app", "api", "localhost":
		return ""
	}
	return first
}
