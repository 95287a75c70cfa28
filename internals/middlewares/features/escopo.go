// internals/middlewares/features/escopo.go
package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"escolar_backend/internals/authz"
	helperAuth "escolar_backend/internals/helpers/auth"
)

// UseEscolaScope resolve, uma vez por requisição, a escola ativa e a
// identidade (papel + vínculos) do usuário autenticado, e guarda ambas
// nos Locals. Tudo que vem depois na cadeia lê o contexto pronto, sem
// repetir consultas de vínculo.
//
// Admin geral não precisa de vínculo, mas precisa indicar a escola
// (claim, header ou subdomínio); para os demais papéis a escola só é
// aceita se houver vínculo ativo.
func UseEscolaScope(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := helperAuth.GetUserID(c)
		if err != nil {
			return err
		}

		hint := helperAuth.EscolaHintFromRequest(c)
		escola, err := authz.ResolveEscola(db, userID, hint)
		if err != nil {
			return err
		}

		ident, err := authz.ResolveIdentity(db, userID, escola.EscolaID)
		if err != nil {
			return err
		}

		c.Locals(helperAuth.LocEscolaID, escola.EscolaID)
		c.Locals(helperAuth.LocIdentity, ident)
		return c.Next()
	}
}

// IsAdminGeral restringe a rota ao administrador da plataforma.
func IsAdminGeral() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := helperAuth.GetIdentity(c)
		if err != nil {
			return err
		}
		if ident.Papel != authz.PapelAdminGeral {
			log.Printf("[WARNING] acesso negado (admin geral): user=%s papel=%s", ident.UserID, ident.Papel)
			return authz.ErrAcessoNegado
		}
		return c.Next()
	}
}

// IsAdminGeralGlobal restringe a rota ao administrador da plataforma sem
// exigir escola ativa (gestão de tenants e de usuários é global).
func IsAdminGeralGlobal(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := helperAuth.GetUserID(c)
		if err != nil {
			return err
		}
		ok, err := authz.IsAdminGeral(db, userID)
		if err != nil {
			return err
		}
		if !ok {
			log.Printf("[WARNING] acesso negado (admin geral global): user=%s", userID)
			return authz.ErrAcessoNegado
		}
		return c.Next()
	}
}

// IsEscolaStaff restringe a rota a admin geral ou admin da escola ativa.
func IsEscolaStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := helperAuth.GetIdentity(c)
		if err != nil {
			return err
		}
		switch ident.Papel {
		case authz.PapelAdminGeral, authz.PapelAdminEscola:
			return c.Next()
		}
		log.Printf("[WARNING] acesso negado (staff): user=%s papel=%s", ident.UserID, ident.Papel)
		return authz.ErrAcessoNegado
	}
}

// IsProfessorOuStaff aceita professor, admin da escola ou admin geral.
func IsProfessorOuStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := helperAuth.GetIdentity(c)
		if err != nil {
			return err
		}
		switch ident.Papel {
		case authz.PapelAdminGeral, authz.PapelAdminEscola, authz.PapelProfessor:
			return c.Next()
		}
		return authz.ErrAcessoNegado
	}
}

// IsMobileRole aceita apenas os papéis atendidos pela API mobile
// (professor e responsável).
func IsMobileRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := helperAuth.GetIdentity(c)
		if err != nil {
			return err
		}
		switch ident.Papel {
		case authz.PapelProfessor, authz.PapelResponsavel:
			return c.Next()
		}
		return authz.ErrSomenteMobileRoles
	}
}
