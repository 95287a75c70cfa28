package constants

import "fmt"

// =======================
// Papéis (roles) do sistema
// =======================
const (
	RoleAdminGeral  = "admin_geral"  // operador global (todas as escolas)
	RoleAdminEscola = "admin_escola" // administrador de uma escola
	RoleProfessor   = "professor"
	RoleResponsavel = "responsavel"
)

// Mensagens de erro padrão por papel
const (
	ErrOnlyAdminGeralCanAccess  = "Apenas o administrador geral pode acessar %s."
	ErrOnlyAdminEscolaCanAccess = "Apenas administradores da escola podem acessar %s."
	ErrOnlyProfessorCanAccess   = "Apenas professores podem acessar %s."
	ErrOnlyMobileRolesCanAccess = "Apenas professores e responsáveis podem usar esta interface."
)

func RoleErrorAdminGeral(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminGeralCanAccess, feature)
}

func RoleErrorAdminEscola(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminEscolaCanAccess, feature)
}

func RoleErrorProfessor(feature string) string {
	return fmt.Sprintf(ErrOnlyProfessorCanAccess, feature)
}

// ==========================
// Grupos de papéis
// ==========================
var (
	AllRoles = []string{
		RoleAdminGeral,
		RoleAdminEscola,
		RoleProfessor,
		RoleResponsavel,
	}

	// Quem pode gerenciar cadastros da escola (turmas, alunos, professores...)
	EscolaStaff = []string{
		RoleAdminGeral,
		RoleAdminEscola,
	}

	// Quem pode autorar atividades (provas, exercícios, mensagens, notas)
	ProfessorAndAbove = []string{
		RoleProfessor,
		RoleAdminEscola,
		RoleAdminGeral,
	}

	// Quem a API mobile aceita no login
	MobileRoles = []string{
		RoleProfessor,
		RoleResponsavel,
	}
)
