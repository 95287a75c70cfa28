package authz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	turmaModel "escolar_backend/internals/features/school/classes/model"
	alunoModel "escolar_backend/internals/features/school/students/model"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
)

// turmaIDsAtivas reduz um conjunto de turmas às ativas; turma desativada sai
// do escopo de professor e responsável, mas segue visível para a gestão.
func turmaIDsAtivas(db *gorm.DB, escolaID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ativas []uuid.UUID
	err := db.Model(&turmaModel.TurmaModel{}).
		Where("turma_escola_id = ? AND turma_id IN ? AND turma_is_active = ?", escolaID, ids, true).
		Pluck("turma_id", &ativas).Error
	return ativas, err
}

// Resolver de relacionamentos derivados. Os conjuntos são recomputados a
// cada request — matrícula e vínculo mudam durante o ano letivo (rematrícula,
// novos responsáveis), então não há cache entre requests.

// AlunoIDsDoResponsavel segue aluno_responsavel escopado pela escola.
func AlunoIDsDoResponsavel(db *gorm.DB, escolaID uuid.UUID, responsavelIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(responsavelIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := db.Model(&tgModel.AlunoResponsavelModel{}).
		Where("aluno_responsavel_escola_id = ? AND aluno_responsavel_responsavel_id IN ?", escolaID, responsavelIDs).
		Distinct().
		Pluck("aluno_responsavel_aluno_id", &ids).Error
	return ids, err
}

// TurmaIDsDoProfessor segue o pivô professor_turma escopado pela escola;
// só turmas ativas entram no conjunto.
func TurmaIDsDoProfessor(db *gorm.DB, escolaID, professorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&tgModel.ProfessorTurmaModel{}).
		Where("professor_turma_escola_id = ? AND professor_turma_professor_id = ?", escolaID, professorID).
		Distinct().
		Pluck("professor_turma_turma_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return turmaIDsAtivas(db, escolaID, ids)
}

// DisciplinaIDsDoProfessor segue o pivô professor_disciplina.
func DisciplinaIDsDoProfessor(db *gorm.DB, escolaID, professorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&tgModel.ProfessorDisciplinaModel{}).
		Where("professor_disciplina_escola_id = ? AND professor_disciplina_professor_id = ?", escolaID, professorID).
		Distinct().
		Pluck("professor_disciplina_disciplina_id", &ids).Error
	return ids, err
}

// TurmaIDsDosAlunos segue apenas matrículas ativas em turmas ativas;
// matrícula encerrada não dá acesso à turma.
func TurmaIDsDosAlunos(db *gorm.DB, escolaID uuid.UUID, alunoIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(alunoIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := db.Model(&alunoModel.MatriculaModel{}).
		Where("matricula_escola_id = ? AND matricula_aluno_id IN ? AND matricula_status = ?",
			escolaID, alunoIDs, alunoModel.MatriculaStatusAtiva).
		Distinct().
		Pluck("matricula_turma_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return turmaIDsAtivas(db, escolaID, ids)
}

// AlunoIDsDasTurmas é o caminho inverso (roster), também só com matrícula
// ativa.
func AlunoIDsDasTurmas(db *gorm.DB, escolaID uuid.UUID, turmaIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(turmaIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := db.Model(&alunoModel.MatriculaModel{}).
		Where("matricula_escola_id = ? AND matricula_turma_id IN ? AND matricula_status = ?",
			escolaID, turmaIDs, alunoModel.MatriculaStatusAtiva).
		Distinct().
		Pluck("matricula_aluno_id", &ids).Error
	return ids, err
}
