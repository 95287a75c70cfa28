package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateMutarProva_AutorPodeOutroProfessorNao(t *testing.T) {
	db := newTestDB(t)

	escola := seedEscola(t, db, "Escola A", "escola-a")
	u1 := seedUser(t, db, "prof1", false)
	u2 := seedUser(t, db, "prof2", false)
	p1 := seedProfessor(t, db, escola.EscolaID, u1.UserID)
	p2 := seedProfessor(t, db, escola.EscolaID, u2.UserID)
	turma := seedTurma(t, db, escola.EscolaID, "1A")
	prova := seedProva(t, db, escola.EscolaID, p1.ProfessorID, turma.TurmaID, "Prova")

	autor := Identity{UserID: u1.UserID, Papel: PapelProfessor, ProfessorID: p1.ProfessorID}
	assert.NoError(t, GateMutarProva(db, autor, escola.EscolaID, prova.ProvaID))

	outro := Identity{UserID: u2.UserID, Papel: PapelProfessor, ProfessorID: p2.ProfessorID}
	assert.ErrorIs(t, GateMutarProva(db, outro, escola.EscolaID, prova.ProvaID), ErrNaoEncontrado)
}

func TestGateMutarProva_OutraEscolaRecebe404(t *testing.T) {
	db := newTestDB(t)

	escolaA := seedEscola(t, db, "Escola A", "escola-a")
	escolaB := seedEscola(t, db, "Escola B", "escola-b")
	u := seedUser(t, db, "prof", false)
	prof := seedProfessor(t, db, escolaA.EscolaID, u.UserID)
	turma := seedTurma(t, db, escolaA.EscolaID, "1A")
	prova := seedProva(t, db, escolaA.EscolaID, prof.ProfessorID, turma.TurmaID, "Prova")

	// admin da escola B tentando mutar registro da escola A: mesma resposta
	// de inexistente
	adminB := Identity{UserID: seedUser(t, db, "adminb", false).UserID, Papel: PapelAdminEscola}
	assert.ErrorIs(t, GateMutarProva(db, adminB, escolaB.EscolaID, prova.ProvaID), ErrNaoEncontrado)

	// admin geral atravessa o tenant
	adminGeral := Identity{UserID: seedUser(t, db, "root", true).UserID, Papel: PapelAdminGeral}
	assert.NoError(t, GateMutarProva(db, adminGeral, escolaB.EscolaID, prova.ProvaID))
}

func TestGateMutarProva_InexistenteRecebe404(t *testing.T) {
	db := newTestDB(t)
	escola := seedEscola(t, db, "Escola A", "escola-a")
	admin := Identity{UserID: uuid.New(), Papel: PapelAdminEscola}

	assert.ErrorIs(t, GateMutarProva(db, admin, escola.EscolaID, uuid.New()), ErrNaoEncontrado)
}

func TestGateMarcarMensagemLida_SomenteResponsavelDoAluno(t *testing.T) {
	db := newTestDB(t)

	escola := seedEscola(t, db, "Escola A", "escola-a")
	uProf := seedUser(t, db, "prof", false)
	prof := seedProfessor(t, db, escola.EscolaID, uProf.UserID)
	aluno := seedAluno(t, db, escola.EscolaID, "Filho")
	msg := seedMensagem(t, db, escola.EscolaID, prof.ProfessorID, aluno.AlunoID, "Recado")

	uResp := seedUser(t, db, "resp", false)
	resp := seedResponsavel(t, db, escola.EscolaID, uResp.UserID)
	vinculaAlunoResponsavel(t, db, escola.EscolaID, aluno.AlunoID, resp.ResponsavelID)

	ok := Identity{UserID: uResp.UserID, Papel: PapelResponsavel, ResponsavelIDs: []uuid.UUID{resp.ResponsavelID}}
	require.NoError(t, GateMarcarMensagemLida(db, ok, escola.EscolaID, msg.MensagemID))

	// nem o professor autor marca como lida
	autor := Identity{UserID: uProf.UserID, Papel: PapelProfessor, ProfessorID: prof.ProfessorID}
	assert.ErrorIs(t, GateMarcarMensagemLida(db, autor, escola.EscolaID, msg.MensagemID), ErrNaoEncontrado)

	// responsável de outro aluno também não
	uOutro := seedUser(t, db, "resp2", false)
	respOutro := seedResponsavel(t, db, escola.EscolaID, uOutro.UserID)
	outroAluno := seedAluno(t, db, escola.EscolaID, "Outro")
	vinculaAlunoResponsavel(t, db, escola.EscolaID, outroAluno.AlunoID, respOutro.ResponsavelID)

	outro := Identity{UserID: uOutro.UserID, Papel: PapelResponsavel, ResponsavelIDs: []uuid.UUID{respOutro.ResponsavelID}}
	assert.ErrorIs(t, GateMarcarMensagemLida(db, outro, escola.EscolaID, msg.MensagemID), ErrNaoEncontrado)
}
