package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "escolar_backend/internals/databases"
	turmaModel "escolar_backend/internals/features/school/classes/model"
	escolaModel "escolar_backend/internals/features/school/escolas/model"
	alunoModel "escolar_backend/internals/features/school/students/model"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
)

type fixture struct {
	db     *gorm.DB
	escola escolaModel.EscolaModel
	outra  escolaModel.EscolaModel
	aluno  alunoModel.AlunoModel
	turma1 turmaModel.TurmaModel
	turma2 turmaModel.TurmaModel
	turmaX turmaModel.TurmaModel // pertence à outra escola
}

func setup(t *testing.T) fixture {
	t.Helper()
	database.SetSchemaPrefix("")

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&escolaModel.EscolaModel{},
		&turmaModel.TurmaModel{},
		&alunoModel.AlunoModel{},
		&alunoModel.MatriculaModel{},
		&tgModel.ResponsavelModel{},
		&tgModel.AlunoResponsavelModel{},
	))

	f := fixture{db: db}
	f.escola = escolaModel.EscolaModel{EscolaNome: "Escola A", EscolaSlug: "escola-a", EscolaIsActive: true}
	require.NoError(t, db.Create(&f.escola).Error)
	f.outra = escolaModel.EscolaModel{EscolaNome: "Escola B", EscolaSlug: "escola-b", EscolaIsActive: true}
	require.NoError(t, db.Create(&f.outra).Error)

	f.aluno = alunoModel.AlunoModel{AlunoEscolaID: f.escola.EscolaID, AlunoNome: "Aluno Teste", AlunoIsActive: true}
	require.NoError(t, db.Create(&f.aluno).Error)

	f.turma1 = turmaModel.TurmaModel{TurmaEscolaID: f.escola.EscolaID, TurmaNome: "1A", TurmaAnoLetivo: 2026, TurmaIsActive: true}
	require.NoError(t, db.Create(&f.turma1).Error)
	f.turma2 = turmaModel.TurmaModel{TurmaEscolaID: f.escola.EscolaID, TurmaNome: "2A", TurmaAnoLetivo: 2026, TurmaIsActive: true}
	require.NoError(t, db.Create(&f.turma2).Error)
	f.turmaX = turmaModel.TurmaModel{TurmaEscolaID: f.outra.EscolaID, TurmaNome: "1B", TurmaAnoLetivo: 2026, TurmaIsActive: true}
	require.NoError(t, db.Create(&f.turmaX).Error)

	return f
}

func matriculasAtivas(t *testing.T, db *gorm.DB, alunoID uuid.UUID) []alunoModel.MatriculaModel {
	t.Helper()
	var ms []alunoModel.MatriculaModel
	require.NoError(t, db.
		Where("matricula_aluno_id = ? AND matricula_status = ?", alunoID, alunoModel.MatriculaStatusAtiva).
		Find(&ms).Error)
	return ms
}

func TestMatricular(t *testing.T) {
	f := setup(t)

	m, err := Matricular(f.db, f.escola.EscolaID, f.aluno.AlunoID, f.turma1.TurmaID)
	require.NoError(t, err)
	assert.Equal(t, alunoModel.MatriculaStatusAtiva, m.MatriculaStatus)
	assert.False(t, m.MatriculaData.IsZero())

	// duplicata ativa na mesma turma é recusada
	_, err = Matricular(f.db, f.escola.EscolaID, f.aluno.AlunoID, f.turma1.TurmaID)
	assert.ErrorIs(t, err, ErrMatriculaDuplicada)

	// turma de outra escola nunca entra
	_, err = Matricular(f.db, f.escola.EscolaID, f.aluno.AlunoID, f.turmaX.TurmaID)
	assert.ErrorIs(t, err, ErrTurmaForaDaEscola)

	_, err = Matricular(f.db, f.escola.EscolaID, uuid.New(), f.turma1.TurmaID)
	assert.ErrorIs(t, err, ErrAlunoNaoEncontrado)
}

func TestRematricular_TrocaDeTurma(t *testing.T) {
	f := setup(t)

	_, err := Matricular(f.db, f.escola.EscolaID, f.aluno.AlunoID, f.turma1.TurmaID)
	require.NoError(t, err)

	nova, err := Rematricular(f.db, f.escola.EscolaID, f.aluno.AlunoID, f.turma2.TurmaID)
	require.NoError(t, err)
	assert.Equal(t, f.turma2.TurmaID, nova.MatriculaTurmaID)

	ativas := matriculasAtivas(t, f.db, f.aluno.AlunoID)
	require.Len(t, ativas, 1)
	assert.Equal(t, f.turma2.TurmaID, ativas[0].MatriculaTurmaID)
}

func TestRematricular_TurmaDeOutraEscolaNaoDesativaNada(t *testing.T) {
	f := setup(t)

	_, err := Matricular(f.db, f.escola.EscolaID, f.aluno.AlunoID, f.turma1.TurmaID)
	require.NoError(t, err)

	// a transação inteira reverte: a matrícula antiga continua ativa
	_, err = Rematricular(f.db, f.escola.EscolaID, f.aluno.AlunoID, f.turmaX.TurmaID)
	assert.ErrorIs(t, err, ErrTurmaForaDaEscola)

	ativas := matriculasAtivas(t, f.db, f.aluno.AlunoID)
	require.Len(t, ativas, 1)
	assert.Equal(t, f.turma1.TurmaID, ativas[0].MatriculaTurmaID)
}

func TestRematricular_SemMatriculaAtiva(t *testing.T) {
	f := setup(t)

	_, err := Rematricular(f.db, f.escola.EscolaID, f.aluno.AlunoID, f.turma1.TurmaID)
	assert.ErrorIs(t, err, ErrSemMatriculaAtiva)

	assert.Empty(t, matriculasAtivas(t, f.db, f.aluno.AlunoID))
}

func TestCriarAlunoComResponsavel(t *testing.T) {
	f := setup(t)

	resp := tgModel.ResponsavelModel{ResponsavelEscolaID: f.escola.EscolaID, ResponsavelUserID: uuid.New()}
	require.NoError(t, f.db.Create(&resp).Error)

	novo := alunoModel.AlunoModel{AlunoEscolaID: f.escola.EscolaID, AlunoNome: "Aluno Novo", AlunoIsActive: true}
	require.NoError(t, CriarAlunoComResponsavel(f.db, &novo, &resp.ResponsavelID, true))

	var pivo tgModel.AlunoResponsavelModel
	require.NoError(t, f.db.
		Where("aluno_responsavel_aluno_id = ?", novo.AlunoID).
		First(&pivo).Error)
	assert.Equal(t, resp.ResponsavelID, pivo.AlunoResponsavelResponsavelID)
	assert.True(t, pivo.AlunoResponsavelPrincipal)
}

func TestCriarAlunoComResponsavel_VinculoInvalidoRevogaTudo(t *testing.T) {
	f := setup(t)

	// responsável de outra escola: nem o aluno pode ficar criado
	resp := tgModel.ResponsavelModel{ResponsavelEscolaID: f.outra.EscolaID, ResponsavelUserID: uuid.New()}
	require.NoError(t, f.db.Create(&resp).Error)

	novo := alunoModel.AlunoModel{AlunoEscolaID: f.escola.EscolaID, AlunoNome: "Aluno Novo", AlunoIsActive: true}
	err := CriarAlunoComResponsavel(f.db, &novo, &resp.ResponsavelID, false)
	assert.ErrorIs(t, err, ErrVinculoInvalido)

	var n int64
	require.NoError(t, f.db.Model(&alunoModel.AlunoModel{}).
		Where("aluno_nome = ?", "Aluno Novo").
		Count(&n).Error)
	assert.Zero(t, n)
}
