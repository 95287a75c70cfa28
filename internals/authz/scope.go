package authz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope é um predicado aplicável a qualquer query GORM da entidade.
type Scope func(*gorm.DB) *gorm.DB

// negaTudo: conjunto de acesso vazio TEM que produzir zero linhas — um
// `IN ()` vazio ignorado silenciosamente viraria "todas as linhas".
func negaTudo(q *gorm.DB) *gorm.DB { return q.Where("1 = 0") }

func inOuNada(col string, ids []uuid.UUID) Scope {
	if len(ids) == 0 {
		return negaTudo
	}
	return func(q *gorm.DB) *gorm.DB { return q.Where(col+" IN ?", ids) }
}

func porEscola(col string, escolaID uuid.UUID) Scope {
	return func(q *gorm.DB) *gorm.DB { return q.Where(col+" = ?", escolaID) }
}

func combina(scopes ...Scope) Scope {
	return func(q *gorm.DB) *gorm.DB {
		for _, s := range scopes {
			q = s(q)
		}
		return q
	}
}

/* =========================================================
   Escopos por entidade — switch exaustivo sobre Papel,
   default nega.
   ========================================================= */

func ScopeTurmas(db *gorm.DB, ident Identity, escolaID uuid.UUID) (Scope, error) {
	escola := porEscola("turma_escola_id", escolaID)
	// Turma desativada some da visão de professor e responsável; a gestão
	// continua vendo tudo para poder reativar.
	ativa := func(q *gorm.DB) *gorm.DB { return q.Where("turma_is_active = ?", true) }
	switch ident.Papel {
	case PapelAdminGeral, PapelAdminEscola:
		return escola, nil
	case PapelProfessor:
		ids, err := TurmaIDsDoProfessor(db, escolaID, ident.ProfessorID)
		if err != nil {
			return nil, err
		}
		return combina(escola, ativa, inOuNada("turma_id", ids)), nil
	case PapelResponsavel:
		alunos, err := AlunoIDsDoResponsavel(db, escolaID, ident.ResponsavelIDs)
		if err != nil {
			return nil, err
		}
		turmas, err := TurmaIDsDosAlunos(db, escolaID, alunos)
		if err != nil {
			return nil, err
		}
		return combina(escola, ativa, inOuNada("turma_id", turmas)), nil
	}
	return negaTudo, nil
}

func ScopeAlunos(db *gorm.DB, ident Identity, escolaID uuid.UUID) (Scope, error) {
	escola := porEscola("aluno_escola_id", escolaID)
	switch ident.Papel {
	case PapelAdminGeral, PapelAdminEscola:
		return escola, nil
	case PapelProfessor:
		turmas, err := TurmaIDsDoProfessor(db, escolaID, ident.ProfessorID)
		if err != nil {
			return nil, err
		}
		alunos, err := AlunoIDsDasTurmas(db, escolaID, turmas)
		if err != nil {
			return nil, err
		}
		return combina(escola, inOuNada("aluno_id", alunos)), nil
	case PapelResponsavel:
		alunos, err := AlunoIDsDoResponsavel(db, escolaID, ident.ResponsavelIDs)
		if err != nil {
			return nil, err
		}
		return combina(escola, inOuNada("aluno_id", alunos)), nil
	}
	return negaTudo, nil
}

func ScopeDisciplinas(db *gorm.DB, ident Identity, escolaID uuid.UUID) (Scope, error) {
	escola := porEscola("disciplina_escola_id", escolaID)
	switch ident.Papel {
	case PapelAdminGeral, PapelAdminEscola:
		return escola, nil
	case PapelProfessor:
		ids, err := DisciplinaIDsDoProfessor(db, escolaID, ident.ProfessorID)
		if err != nil {
			return nil, err
		}
		return combina(escola, inOuNada("disciplina_id", ids)), nil
	}
	return negaTudo, nil
}

func ScopeProvas(db *gorm.DB, ident Identity, escolaID uuid.UUID) (Scope, error) {
	escola := porEscola("prova_escola_id", escolaID)
	switch ident.Papel {
	case PapelAdminGeral, PapelAdminEscola:
		return escola, nil
	case PapelProfessor:
		// autoria, não turma: P2 não vê as provas de P1 mesmo co-lecionando
		return combina(escola, func(q *gorm.DB) *gorm.DB {
			return q.Where("prova_professor_id = ?", ident.ProfessorID)
		}), nil
	case PapelResponsavel:
		alunos, err := AlunoIDsDoResponsavel(db, escolaID, ident.ResponsavelIDs)
		if err != nil {
			return nil, err
		}
		turmas, err := TurmaIDsDosAlunos(db, escolaID, alunos)
		if err != nil {
			return nil, err
		}
		return combina(escola, inOuNada("prova_turma_id", turmas)), nil
	}
	return negaTudo, nil
}

func ScopeExercicios(db *gorm.DB, ident Identity, escolaID uuid.UUID) (Scope, error) {
	escola := porEscola("exercicio_escola_id", escolaID)
	switch ident.Papel {
	case PapelAdminGeral, PapelAdminEscola:
		return escola, nil
	case PapelProfessor:
		return combina(escola, func(q *gorm.DB) *gorm.DB {
			return q.Where("exercicio_professor_id = ?", ident.ProfessorID)
		}), nil
	case PapelResponsavel:
		alunos, err := AlunoIDsDoResponsavel(db, escolaID, ident.ResponsavelIDs)
		if err != nil {
			return nil, err
		}
		turmas, err := TurmaIDsDosAlunos(db, escolaID, alunos)
		if err != nil {
			return nil, err
		}
		return combina(escola, inOuNada("exercicio_turma_id", turmas)), nil
	}
	return negaTudo, nil
}

func ScopeMensagens(db *gorm.DB, ident Identity, escolaID uuid.UUID) (Scope, error) {
	escola := porEscola("mensagem_escola_id", escolaID)
	switch ident.Papel {
	case PapelAdminGeral, PapelAdminEscola:
		return escola, nil
	case PapelProfessor:
		return combina(escola, func(q *gorm.DB) *gorm.DB {
			return q.Where("mensagem_professor_id = ?", ident.ProfessorID)
		}), nil
	case PapelResponsavel:
		alunos, err := AlunoIDsDoResponsavel(db, escolaID, ident.ResponsavelIDs)
		if err != nil {
			return nil, err
		}
		return combina(escola, inOuNada("mensagem_aluno_id", alunos)), nil
	}
	return negaTudo, nil
}

func ScopeNotas(db *gorm.DB, ident Identity, escolaID uuid.UUID) (Scope, error) {
	escola := porEscola("nota_escola_id", escolaID)
	switch ident.Papel {
	case PapelAdminGeral, PapelAdminEscola:
		return escola, nil
	case PapelProfessor:
		return combina(escola, func(q *gorm.DB) *gorm.DB {
			return q.Where("nota_professor_id = ?", ident.ProfessorID)
		}), nil
	case PapelResponsavel:
		alunos, err := AlunoIDsDoResponsavel(db, escolaID, ident.ResponsavelIDs)
		if err != nil {
			return nil, err
		}
		return combina(escola, inOuNada("nota_aluno_id", alunos)), nil
	}
	return negaTudo, nil
}

// ScopeAvisos filtra pelo público-alvo (papéis) além da escola. O filtro de
// array é Postgres-only (text[]); a superfície de teste não cobre avisos.
func ScopeAvisos(db *gorm.DB, ident Identity, escolaID uuid.UUID) (Scope, error) {
	escola := porEscola("aviso_escola_id", escolaID)
	switch ident.Papel {
	case PapelAdminGeral, PapelAdminEscola:
		return escola, nil
	case PapelProfessor, PapelResponsavel:
		papel := ident.Papel.String()
		return combina(escola, func(q *gorm.DB) *gorm.DB {
			return q.Where("(aviso_papeis_alvo IS NULL OR cardinality(aviso_papeis_alvo) = 0 OR ? = ANY(aviso_papeis_alvo))", papel)
		}), nil
	}
	return negaTudo, nil
}
