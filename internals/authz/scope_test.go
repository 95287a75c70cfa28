package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	atividadeModel "escolar_backend/internals/features/school/activities/model"
	turmaModel "escolar_backend/internals/features/school/classes/model"
	mensagemModel "escolar_backend/internals/features/school/messages/model"
	alunoModel "escolar_backend/internals/features/school/students/model"
)

func TestScopeTurmas_IsolamentoEntreEscolas(t *testing.T) {
	db := newTestDB(t)

	escolaA := seedEscola(t, db, "Escola A", "escola-a")
	escolaB := seedEscola(t, db, "Escola B", "escola-b")
	seedTurma(t, db, escolaA.EscolaID, "1A")
	seedTurma(t, db, escolaA.EscolaID, "2A")
	seedTurma(t, db, escolaB.EscolaID, "1B")

	admin := Identity{UserID: seedUser(t, db, "admin", false).UserID, Papel: PapelAdminEscola}

	scope, err := ScopeTurmas(db, admin, escolaA.EscolaID)
	require.NoError(t, err)

	var turmas []turmaModel.TurmaModel
	require.NoError(t, scope(db.Model(&turmaModel.TurmaModel{})).Find(&turmas).Error)
	require.Len(t, turmas, 2)
	for _, tm := range turmas {
		assert.Equal(t, escolaA.EscolaID, tm.TurmaEscolaID)
	}
}

func TestScopeTurmas_ProfessorSoVeSuasTurmas(t *testing.T) {
	db := newTestDB(t)

	escola := seedEscola(t, db, "Escola A", "escola-a")
	u := seedUser(t, db, "prof", false)
	prof := seedProfessor(t, db, escola.EscolaID, u.UserID)

	minha := seedTurma(t, db, escola.EscolaID, "1A")
	seedTurma(t, db, escola.EscolaID, "2A")
	vinculaProfessorTurma(t, db, escola.EscolaID, prof.ProfessorID, minha.TurmaID)

	ident := Identity{UserID: u.UserID, Papel: PapelProfessor, ProfessorID: prof.ProfessorID}
	scope, err := ScopeTurmas(db, ident, escola.EscolaID)
	require.NoError(t, err)

	var turmas []turmaModel.TurmaModel
	require.NoError(t, scope(db.Model(&turmaModel.TurmaModel{})).Find(&turmas).Error)
	require.Len(t, turmas, 1)
	assert.Equal(t, minha.TurmaID, turmas[0].TurmaID)
}

func TestScopeTurmas_TurmaInativaSomeParaProfessor(t *testing.T) {
	db := newTestDB(t)

	escola := seedEscola(t, db, "Escola A", "escola-a")
	u := seedUser(t, db, "prof", false)
	prof := seedProfessor(t, db, escola.EscolaID, u.UserID)

	ativa := seedTurma(t, db, escola.EscolaID, "1A")
	inativa := seedTurma(t, db, escola.EscolaID, "2A")
	vinculaProfessorTurma(t, db, escola.EscolaID, prof.ProfessorID, ativa.TurmaID)
	vinculaProfessorTurma(t, db, escola.EscolaID, prof.ProfessorID, inativa.TurmaID)
	require.NoError(t, db.Model(&turmaModel.TurmaModel{}).
		Where("turma_id = ?", inativa.TurmaID).
		Update("turma_is_active", false).Error)

	ident := Identity{UserID: u.UserID, Papel: PapelProfessor, ProfessorID: prof.ProfessorID}
	scope, err := ScopeTurmas(db, ident, escola.EscolaID)
	require.NoError(t, err)

	var turmas []turmaModel.TurmaModel
	require.NoError(t, scope(db.Model(&turmaModel.TurmaModel{})).Find(&turmas).Error)
	require.Len(t, turmas, 1)
	assert.Equal(t, ativa.TurmaID, turmas[0].TurmaID)

	// o aluno da turma desativada também sai do escopo derivado
	aluno := seedAluno(t, db, escola.EscolaID, "João")
	seedMatricula(t, db, escola.EscolaID, aluno.AlunoID, inativa.TurmaID, alunoModel.MatriculaStatusAtiva)
	scopeAlunos, err := ScopeAlunos(db, ident, escola.EscolaID)
	require.NoError(t, err)
	var alunos []alunoModel.AlunoModel
	require.NoError(t, scopeAlunos(db.Model(&alunoModel.AlunoModel{})).Find(&alunos).Error)
	assert.Empty(t, alunos)

	// a gestão segue vendo a turma desativada para poder reativar
	admin := Identity{UserID: uuid.New(), Papel: PapelAdminEscola}
	scopeAdmin, err := ScopeTurmas(db, admin, escola.EscolaID)
	require.NoError(t, err)
	var todas []turmaModel.TurmaModel
	require.NoError(t, scopeAdmin(db.Model(&turmaModel.TurmaModel{})).Find(&todas).Error)
	assert.Len(t, todas, 2)
}

func TestScopeTurmas_TurmaInativaSomeParaResponsavel(t *testing.T) {
	db := newTestDB(t)

	escola := seedEscola(t, db, "Escola A", "escola-a")
	uResp := seedUser(t, db, "resp", false)
	resp := seedResponsavel(t, db, escola.EscolaID, uResp.UserID)
	aluno := seedAluno(t, db, escola.EscolaID, "Maria")
	vinculaAlunoResponsavel(t, db, escola.EscolaID, aluno.AlunoID, resp.ResponsavelID)

	turma := seedTurma(t, db, escola.EscolaID, "3B")
	seedMatricula(t, db, escola.EscolaID, aluno.AlunoID, turma.TurmaID, alunoModel.MatriculaStatusAtiva)
	require.NoError(t, db.Model(&turmaModel.TurmaModel{}).
		Where("turma_id = ?", turma.TurmaID).
		Update("turma_is_active", false).Error)

	ident := Identity{UserID: uResp.UserID, Papel: PapelResponsavel, ResponsavelIDs: []uuid.UUID{resp.ResponsavelID}}
	scope, err := ScopeTurmas(db, ident, escola.EscolaID)
	require.NoError(t, err)

	var turmas []turmaModel.TurmaModel
	require.NoError(t, scope(db.Model(&turmaModel.TurmaModel{})).Find(&turmas).Error)
	assert.Empty(t, turmas)
}

func TestScopeTurmas_ConjuntoVazioProduzZeroLinhas(t *testing.T) {
	db := newTestDB(t)

	escola := seedEscola(t, db, "Escola A", "escola-a")
	u := seedUser(t, db, "prof", false)
	prof := seedProfessor(t, db, escola.EscolaID, u.UserID) // sem turmas
	seedTurma(t, db, escola.EscolaID, "1A")

	ident := Identity{UserID: u.UserID, Papel: PapelProfessor, ProfessorID: prof.ProfessorID}
	scope, err := ScopeTurmas(db, ident, escola.EscolaID)
	require.NoError(t, err)

	var n int64
	require.NoError(t, scope(db.Model(&turmaModel.TurmaModel{})).Count(&n).Error)
	assert.Zero(t, n)
}

func TestScopeAlunos_ResponsavelSoVeSeusAlunos(t *testing.T) {
	db := newTestDB(t)

	escola := seedEscola(t, db, "Escola A", "escola-a")
	u := seedUser(t, db, "resp", false)
	resp := seedResponsavel(t, db, escola.EscolaID, u.UserID)

	meu := seedAluno(t, db, escola.EscolaID, "Filho")
	seedAluno(t, db, escola.EscolaID, "Outro aluno")
	vinculaAlunoResponsavel(t, db, escola.EscolaID, meu.AlunoID, resp.ResponsavelID)

	ident := Identity{UserID: u.UserID, Papel: PapelResponsavel, ResponsavelIDs: []uuid.UUID{resp.ResponsavelID}}
	scope, err := ScopeAlunos(db, ident, escola.EscolaID)
	require.NoError(t, err)

	var alunos []alunoModel.AlunoModel
	require.NoError(t, scope(db.Model(&alunoModel.AlunoModel{})).Find(&alunos).Error)
	require.Len(t, alunos, 1)
	assert.Equal(t, meu.AlunoID, alunos[0].AlunoID)
}

func TestScopeTurmas_MatriculaEncerradaNaoDaAcesso(t *testing.T) {
	db := newTestDB(t)

	escola := seedEscola(t, db, "Escola A", "escola-a")
	u := seedUser(t, db, "resp", false)
	resp := seedResponsavel(t, db, escola.EscolaID, u.UserID)
	aluno := seedAluno(t, db, escola.EscolaID, "Filho")
	vinculaAlunoResponsavel(t, db, escola.EscolaID, aluno.AlunoID, resp.ResponsavelID)

	antiga := seedTurma(t, db, escola.EscolaID, "1A")
	atual := seedTurma(t, db, escola.EscolaID, "2A")
	seedMatricula(t, db, escola.EscolaID, aluno.AlunoID, antiga.TurmaID, alunoModel.MatriculaStatusInativa)
	seedMatricula(t, db, escola.EscolaID, aluno.AlunoID, atual.TurmaID, alunoModel.MatriculaStatusAtiva)

	ident := Identity{UserID: u.UserID, Papel: PapelResponsavel, ResponsavelIDs: []uuid.UUID{resp.ResponsavelID}}
	scope, err := ScopeTurmas(db, ident, escola.EscolaID)
	require.NoError(t, err)

	var turmas []turmaModel.TurmaModel
	require.NoError(t, scope(db.Model(&turmaModel.TurmaModel{})).Find(&turmas).Error)
	require.Len(t, turmas, 1)
	assert.Equal(t, atual.TurmaID, turmas[0].TurmaID)
}

func TestScopeProvas_AutoriaNaoTurma(t *testing.T) {
	db := newTestDB(t)

	escola := seedEscola(t, db, "Escola A", "escola-a")
	u1 := seedUser(t, db, "prof1", false)
	u2 := seedUser(t, db, "prof2", false)
	p1 := seedProfessor(t, db, escola.EscolaID, u1.UserID)
	p2 := seedProfessor(t, db, escola.EscolaID, u2.UserID)

	// os dois lecionam na mesma turma
	turma := seedTurma(t, db, escola.EscolaID, "1A")
	vinculaProfessorTurma(t, db, escola.EscolaID, p1.ProfessorID, turma.TurmaID)
	vinculaProfessorTurma(t, db, escola.EscolaID, p2.ProfessorID, turma.TurmaID)

	minha := seedProva(t, db, escola.EscolaID, p1.ProfessorID, turma.TurmaID, "Prova de p1")
	seedProva(t, db, escola.EscolaID, p2.ProfessorID, turma.TurmaID, "Prova de p2")

	ident := Identity{UserID: u1.UserID, Papel: PapelProfessor, ProfessorID: p1.ProfessorID}
	scope, err := ScopeProvas(db, ident, escola.EscolaID)
	require.NoError(t, err)

	var provas []atividadeModel.ProvaModel
	require.NoError(t, scope(db.Model(&atividadeModel.ProvaModel{})).Find(&provas).Error)
	require.Len(t, provas, 1)
	assert.Equal(t, minha.ProvaID, provas[0].ProvaID)
}

func TestScopeMensagens_ResponsavelViaAlunoAlvo(t *testing.T) {
	db := newTestDB(t)

	escola := seedEscola(t, db, "Escola A", "escola-a")
	uProf := seedUser(t, db, "prof", false)
	prof := seedProfessor(t, db, escola.EscolaID, uProf.UserID)

	uResp := seedUser(t, db, "resp", false)
	resp := seedResponsavel(t, db, escola.EscolaID, uResp.UserID)

	meu := seedAluno(t, db, escola.EscolaID, "Filho")
	outro := seedAluno(t, db, escola.EscolaID, "Outro")
	vinculaAlunoResponsavel(t, db, escola.EscolaID, meu.AlunoID, resp.ResponsavelID)

	minha := seedMensagem(t, db, escola.EscolaID, prof.ProfessorID, meu.AlunoID, "Para o meu filho")
	seedMensagem(t, db, escola.EscolaID, prof.ProfessorID, outro.AlunoID, "Para outro aluno")

	ident := Identity{UserID: uResp.UserID, Papel: PapelResponsavel, ResponsavelIDs: []uuid.UUID{resp.ResponsavelID}}
	scope, err := ScopeMensagens(db, ident, escola.EscolaID)
	require.NoError(t, err)

	var msgs []mensagemModel.MensagemModel
	require.NoError(t, scope(db.Model(&mensagemModel.MensagemModel{})).Find(&msgs).Error)
	require.Len(t, msgs, 1)
	assert.Equal(t, minha.MensagemID, msgs[0].MensagemID)
}
