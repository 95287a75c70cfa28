// internals/features/school/students/service/matricula_service.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	turmaModel "escolar_backend/internals/features/school/classes/model"
	alunoModel "escolar_backend/internals/features/school/students/model"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
)

// Erros de domínio das matrículas; o controller converte em 404/409.
var (
	ErrAlunoNaoEncontrado   = errors.New("aluno não encontrado")
	ErrTurmaForaDaEscola    = errors.New("turma não pertence à escola")
	ErrMatriculaDuplicada   = errors.New("aluno já possui matrícula ativa nesta turma")
	ErrVinculoInvalido      = errors.New("vínculo de responsável inválido")
	ErrSemMatriculaAtiva    = errors.New("aluno não possui matrícula ativa")
)

// Matricular cria a matrícula ativa do aluno na turma. Aluno e turma
// precisam pertencer à escola; duplicata ativa é recusada.
func Matricular(db *gorm.DB, escolaID, alunoID, turmaID uuid.UUID) (*alunoModel.MatriculaModel, error) {
	var matricula *alunoModel.MatriculaModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := exigeAluno(tx, escolaID, alunoID); err != nil {
			return err
		}
		if err := exigeTurma(tx, escolaID, turmaID); err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&alunoModel.MatriculaModel{}).
			Where("matricula_aluno_id = ? AND matricula_turma_id = ? AND matricula_status = ?",
				alunoID, turmaID, alunoModel.MatriculaStatusAtiva).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrMatriculaDuplicada
		}

		m := alunoModel.MatriculaModel{
			MatriculaEscolaID: escolaID,
			MatriculaAlunoID:  alunoID,
			MatriculaTurmaID:  turmaID,
			MatriculaStatus:   alunoModel.MatriculaStatusAtiva,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		matricula = &m
		return nil
	})
	return matricula, err
}

// Rematricular troca a turma ativa do aluno: desativa as matrículas
// ativas e cria a nova, tudo ou nada. Turma de outra escola aborta a
// transação inteira — nunca fica um aluno sem matrícula por falha parcial.
func Rematricular(db *gorm.DB, escolaID, alunoID, novaTurmaID uuid.UUID) (*alunoModel.MatriculaModel, error) {
	var matricula *alunoModel.MatriculaModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := exigeAluno(tx, escolaID, alunoID); err != nil {
			return err
		}
		if err := exigeTurma(tx, escolaID, novaTurmaID); err != nil {
			return err
		}

		res := tx.Model(&alunoModel.MatriculaModel{}).
			Where("matricula_escola_id = ? AND matricula_aluno_id = ? AND matricula_status = ?",
				escolaID, alunoID, alunoModel.MatriculaStatusAtiva).
			Update("matricula_status", alunoModel.MatriculaStatusInativa)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSemMatriculaAtiva
		}

		m := alunoModel.MatriculaModel{
			MatriculaEscolaID: escolaID,
			MatriculaAlunoID:  alunoID,
			MatriculaTurmaID:  novaTurmaID,
			MatriculaStatus:   alunoModel.MatriculaStatusAtiva,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		matricula = &m
		return nil
	})
	return matricula, err
}

// CriarAlunoComResponsavel cria o aluno e, se informado, o vínculo com um
// responsável existente — uma transação só.
func CriarAlunoComResponsavel(db *gorm.DB, aluno *alunoModel.AlunoModel, responsavelID *uuid.UUID, principal bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(aluno).Error; err != nil {
			return err
		}
		if responsavelID == nil {
			return nil
		}

		var n int64
		if err := tx.Model(&tgModel.ResponsavelModel{}).
			Where("responsavel_id = ? AND responsavel_escola_id = ?", *responsavelID, aluno.AlunoEscolaID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrVinculoInvalido
		}

		pivo := tgModel.AlunoResponsavelModel{
			AlunoResponsavelEscolaID:      aluno.AlunoEscolaID,
			AlunoResponsavelAlunoID:       aluno.AlunoID,
			AlunoResponsavelResponsavelID: *responsavelID,
			AlunoResponsavelPrincipal:     principal,
		}
		return tx.Create(&pivo).Error
	})
}

func exigeAluno(tx *gorm.DB, escolaID, alunoID uuid.UUID) error {
	var n int64
	if err := tx.Model(&alunoModel.AlunoModel{}).
		Where("aluno_id = ? AND aluno_escola_id = ? AND aluno_is_active = ?", alunoID, escolaID, true).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrAlunoNaoEncontrado
	}
	return nil
}

func exigeTurma(tx *gorm.DB, escolaID, turmaID uuid.UUID) error {
	var n int64
	if err := tx.Model(&turmaModel.TurmaModel{}).
		Where("turma_id = ? AND turma_escola_id = ? AND turma_is_active = ?", turmaID, escolaID, true).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrTurmaForaDaEscola
	}
	return nil
}
