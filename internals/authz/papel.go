// Package authz concentra a resolução de identidade, o contexto de escola
// (tenant) e o escopo de consultas/mutações usado pelas duas superfícies
// HTTP (web e mobile). Nenhum controller aplica regra de escopo por conta
// própria: tudo passa por aqui.
package authz

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Papel é a variante fechada resolvida uma vez por request. Os switches de
// escopo cobrem todos os casos e negam por default.
type Papel int

const (
	PapelAdminGeral Papel = iota + 1
	PapelAdminEscola
	PapelProfessor
	PapelResponsavel
)

func (p Papel) String() string {
	switch p {
	case PapelAdminGeral:
		return "admin_geral"
	case PapelAdminEscola:
		return "admin_escola"
	case PapelProfessor:
		return "professor"
	case PapelResponsavel:
		return "responsavel"
	}
	return "desconhecido"
}

// Identity carrega o papel resolvido e os IDs de especialização válidos
// para a escola ativa.
type Identity struct {
	UserID uuid.UUID
	Papel  Papel

	// válido quando Papel == PapelProfessor
	ProfessorID uuid.UUID

	// válido quando Papel == PapelResponsavel
	ResponsavelIDs []uuid.UUID
}

// "não encontrado" e "fora do escopo" são deliberadamente a mesma resposta
// para não confirmar existência entre escolas.
var (
	ErrAcessoNegado        = fiber.NewError(fiber.StatusForbidden, "Acesso negado.")
	ErrSomenteMobileRoles  = fiber.NewError(fiber.StatusForbidden, "Apenas professores e responsáveis podem usar esta interface.")
	ErrNaoEncontrado       = fiber.NewError(fiber.StatusNotFound, "Registro não encontrado.")
	ErrEscolaNaoEncontrada = fiber.NewError(fiber.StatusNotFound, "Escola não encontrada.")
)
