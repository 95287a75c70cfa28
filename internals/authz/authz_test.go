package authz

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "escolar_backend/internals/databases"
	atividadeModel "escolar_backend/internals/features/school/activities/model"
	turmaModel "escolar_backend/internals/features/school/classes/model"
	disciplinaModel "escolar_backend/internals/features/school/disciplines/model"
	escolaModel "escolar_backend/internals/features/school/escolas/model"
	notaModel "escolar_backend/internals/features/school/grades/model"
	mensagemModel "escolar_backend/internals/features/school/messages/model"
	alunoModel "escolar_backend/internals/features/school/students/model"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
	userModel "escolar_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database.SetSchemaPrefix("")

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&escolaModel.EscolaModel{},
		&escolaModel.EscolaUsuarioModel{},
		&turmaModel.TurmaModel{},
		&disciplinaModel.DisciplinaModel{},
		&alunoModel.AlunoModel{},
		&alunoModel.MatriculaModel{},
		&tgModel.ProfessorModel{},
		&tgModel.ProfessorTurmaModel{},
		&tgModel.ProfessorDisciplinaModel{},
		&tgModel.ResponsavelModel{},
		&tgModel.AlunoResponsavelModel{},
		&atividadeModel.ProvaModel{},
		&atividadeModel.ExercicioModel{},
		&mensagemModel.MensagemModel{},
		&notaModel.NotaModel{},
	))
	return db
}

var cpfSeq int

func seedUser(t *testing.T, db *gorm.DB, nome string, adminGeral bool) userModel.UserModel {
	t.Helper()
	cpfSeq++
	u := userModel.UserModel{
		UserNome:         nome,
		UserEmail:        fmt.Sprintf("%s%d@teste.com", nome, cpfSeq),
		UserCPF:          fmt.Sprintf("%011d", cpfSeq),
		UserSenha:        "x",
		UserIsAdminGeral: adminGeral,
		UserIsActive:     true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedEscola(t *testing.T, db *gorm.DB, nome, slug string) escolaModel.EscolaModel {
	t.Helper()
	e := escolaModel.EscolaModel{EscolaNome: nome, EscolaSlug: slug, EscolaIsActive: true}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func seedProfessor(t *testing.T, db *gorm.DB, escolaID, userID uuid.UUID) tgModel.ProfessorModel {
	t.Helper()
	p := tgModel.ProfessorModel{ProfessorEscolaID: escolaID, ProfessorUserID: userID, ProfessorIsActive: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedTurma(t *testing.T, db *gorm.DB, escolaID uuid.UUID, nome string) turmaModel.TurmaModel {
	t.Helper()
	tm := turmaModel.TurmaModel{TurmaEscolaID: escolaID, TurmaNome: nome, TurmaAnoLetivo: 2026, TurmaIsActive: true}
	require.NoError(t, db.Create(&tm).Error)
	return tm
}

func vinculaProfessorTurma(t *testing.T, db *gorm.DB, escolaID, profID, turmaID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&tgModel.ProfessorTurmaModel{
		ProfessorTurmaEscolaID:    escolaID,
		ProfessorTurmaProfessorID: profID,
		ProfessorTurmaTurmaID:     turmaID,
	}).Error)
}

func seedAluno(t *testing.T, db *gorm.DB, escolaID uuid.UUID, nome string) alunoModel.AlunoModel {
	t.Helper()
	a := alunoModel.AlunoModel{AlunoEscolaID: escolaID, AlunoNome: nome, AlunoIsActive: true}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func seedMatricula(t *testing.T, db *gorm.DB, escolaID, alunoID, turmaID uuid.UUID, status string) alunoModel.MatriculaModel {
	t.Helper()
	m := alunoModel.MatriculaModel{
		MatriculaEscolaID: escolaID,
		MatriculaAlunoID:  alunoID,
		MatriculaTurmaID:  turmaID,
		MatriculaStatus:   status,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func seedResponsavel(t *testing.T, db *gorm.DB, escolaID, userID uuid.UUID) tgModel.ResponsavelModel {
	t.Helper()
	r := tgModel.ResponsavelModel{ResponsavelEscolaID: escolaID, ResponsavelUserID: userID}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func vinculaAlunoResponsavel(t *testing.T, db *gorm.DB, escolaID, alunoID, respID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&tgModel.AlunoResponsavelModel{
		AlunoResponsavelEscolaID:      escolaID,
		AlunoResponsavelAlunoID:       alunoID,
		AlunoResponsavelResponsavelID: respID,
	}).Error)
}

func seedProva(t *testing.T, db *gorm.DB, escolaID, profID, turmaID uuid.UUID, titulo string) atividadeModel.ProvaModel {
	t.Helper()
	p := atividadeModel.ProvaModel{
		ProvaEscolaID:    escolaID,
		ProvaProfessorID: profID,
		ProvaTurmaID:     turmaID,
		ProvaTitulo:      titulo,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedMensagem(t *testing.T, db *gorm.DB, escolaID, profID, alunoID uuid.UUID, titulo string) mensagemModel.MensagemModel {
	t.Helper()
	m := mensagemModel.MensagemModel{
		MensagemEscolaID:    escolaID,
		MensagemProfessorID: profID,
		MensagemAlunoID:     alunoID,
		MensagemTitulo:      titulo,
		MensagemCorpo:       "corpo",
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}
