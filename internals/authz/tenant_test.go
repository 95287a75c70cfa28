package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	escolaModel "escolar_backend/internals/features/school/escolas/model"
)

func vinculaAdminEscola(t *testing.T, db *gorm.DB, escolaID, userID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&escolaModel.EscolaUsuarioModel{
		EscolaUsuarioEscolaID: escolaID,
		EscolaUsuarioUserID:   userID,
		EscolaUsuarioPapel:    "admin_escola",
		EscolaUsuarioIsActive: true,
	}).Error)
}

func TestResolveEscola_HintComVinculo(t *testing.T) {
	db := newTestDB(t)
	escola := seedEscola(t, db, "Escola A", "escola-a")
	u := seedUser(t, db, "prof", false)
	seedProfessor(t, db, escola.EscolaID, u.UserID)

	got, err := ResolveEscola(db, u.UserID, EscolaHint{ID: escola.EscolaID})
	require.NoError(t, err)
	assert.Equal(t, escola.EscolaID, got.EscolaID)

	// por slug também
	got, err = ResolveEscola(db, u.UserID, EscolaHint{Slug: "Escola-A"})
	require.NoError(t, err)
	assert.Equal(t, escola.EscolaID, got.EscolaID)
}

func TestResolveEscola_HintSemVinculoRecebe404(t *testing.T) {
	db := newTestDB(t)
	escolaA := seedEscola(t, db, "Escola A", "escola-a")
	escolaB := seedEscola(t, db, "Escola B", "escola-b")
	u := seedUser(t, db, "prof", false)
	seedProfessor(t, db, escolaA.EscolaID, u.UserID)

	_, err := ResolveEscola(db, u.UserID, EscolaHint{ID: escolaB.EscolaID})
	assert.ErrorIs(t, err, ErrEscolaNaoEncontrada)
}

func TestResolveEscola_SemHintUnicaEscola(t *testing.T) {
	db := newTestDB(t)
	escola := seedEscola(t, db, "Escola A", "escola-a")
	u := seedUser(t, db, "prof", false)
	seedProfessor(t, db, escola.EscolaID, u.UserID)

	got, err := ResolveEscola(db, u.UserID, EscolaHint{})
	require.NoError(t, err)
	assert.Equal(t, escola.EscolaID, got.EscolaID)
}

func TestResolveEscola_SemHintVariasEscolasExigeSelecao(t *testing.T) {
	db := newTestDB(t)
	escolaA := seedEscola(t, db, "Escola A", "escola-a")
	escolaB := seedEscola(t, db, "Escola B", "escola-b")
	u := seedUser(t, db, "prof", false)
	seedProfessor(t, db, escolaA.EscolaID, u.UserID)
	seedResponsavel(t, db, escolaB.EscolaID, u.UserID)

	// nunca "primeira escola": sem hint com vínculo duplo é 404
	_, err := ResolveEscola(db, u.UserID, EscolaHint{})
	assert.ErrorIs(t, err, ErrEscolaNaoEncontrada)
}

func TestResolveEscola_AdminGeralSoComHint(t *testing.T) {
	db := newTestDB(t)
	escola := seedEscola(t, db, "Escola A", "escola-a")
	root := seedUser(t, db, "root", true)

	got, err := ResolveEscola(db, root.UserID, EscolaHint{ID: escola.EscolaID})
	require.NoError(t, err)
	assert.Equal(t, escola.EscolaID, got.EscolaID)

	_, err = ResolveEscola(db, root.UserID, EscolaHint{})
	assert.ErrorIs(t, err, ErrEscolaNaoEncontrada)
}

func TestResolveEscola_UsuarioInativoNegado(t *testing.T) {
	db := newTestDB(t)
	escola := seedEscola(t, db, "Escola A", "escola-a")
	u := seedUser(t, db, "prof", false)
	seedProfessor(t, db, escola.EscolaID, u.UserID)
	require.NoError(t, db.Model(&u).Update("user_is_active", false).Error)

	_, err := ResolveEscola(db, u.UserID, EscolaHint{ID: escola.EscolaID})
	assert.ErrorIs(t, err, ErrAcessoNegado)
}

func TestResolveIdentity_Precedencia(t *testing.T) {
	db := newTestDB(t)
	escola := seedEscola(t, db, "Escola A", "escola-a")

	// admin geral vence qualquer vínculo
	root := seedUser(t, db, "root", true)
	ident, err := ResolveIdentity(db, root.UserID, escola.EscolaID)
	require.NoError(t, err)
	assert.Equal(t, PapelAdminGeral, ident.Papel)

	// vínculo administrativo vence registro de professor
	misto := seedUser(t, db, "misto", false)
	vinculaAdminEscola(t, db, escola.EscolaID, misto.UserID)
	seedProfessor(t, db, escola.EscolaID, misto.UserID)
	ident, err = ResolveIdentity(db, misto.UserID, escola.EscolaID)
	require.NoError(t, err)
	assert.Equal(t, PapelAdminEscola, ident.Papel)
}

func TestResolveIdentity_ProfessorEResponsavel(t *testing.T) {
	db := newTestDB(t)
	escola := seedEscola(t, db, "Escola A", "escola-a")

	uProf := seedUser(t, db, "prof", false)
	prof := seedProfessor(t, db, escola.EscolaID, uProf.UserID)
	ident, err := ResolveIdentity(db, uProf.UserID, escola.EscolaID)
	require.NoError(t, err)
	assert.Equal(t, PapelProfessor, ident.Papel)
	assert.Equal(t, prof.ProfessorID, ident.ProfessorID)

	uResp := seedUser(t, db, "resp", false)
	r1 := seedResponsavel(t, db, escola.EscolaID, uResp.UserID)
	ident, err = ResolveIdentity(db, uResp.UserID, escola.EscolaID)
	require.NoError(t, err)
	assert.Equal(t, PapelResponsavel, ident.Papel)
	assert.Equal(t, []uuid.UUID{r1.ResponsavelID}, ident.ResponsavelIDs)
}

func TestResolveIdentity_SemVinculoNegado(t *testing.T) {
	db := newTestDB(t)
	escola := seedEscola(t, db, "Escola A", "escola-a")
	u := seedUser(t, db, "avulso", false)

	_, err := ResolveIdentity(db, u.UserID, escola.EscolaID)
	assert.ErrorIs(t, err, ErrAcessoNegado)
}

func TestIsAdminGeral(t *testing.T) {
	db := newTestDB(t)
	root := seedUser(t, db, "root", true)
	comum := seedUser(t, db, "comum", false)

	ok, err := IsAdminGeral(db, root.UserID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsAdminGeral(db, comum.UserID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsAdminGeral(db, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}
