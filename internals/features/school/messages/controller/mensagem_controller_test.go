package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"escolar_backend/internals/authz"
	database "escolar_backend/internals/databases"
	mensagemModel "escolar_backend/internals/features/school/messages/model"
	alunoModel "escolar_backend/internals/features/school/students/model"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
	helperAuth "escolar_backend/internals/helpers/auth"
)

type lidaFixture struct {
	db       *gorm.DB
	escolaID uuid.UUID
	resp     tgModel.ResponsavelModel
	outro    tgModel.ResponsavelModel
	msg      mensagemModel.MensagemModel
}

func setupLida(t *testing.T) lidaFixture {
	t.Helper()
	database.SetSchemaPrefix("")

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&alunoModel.AlunoModel{},
		&tgModel.ResponsavelModel{},
		&tgModel.AlunoResponsavelModel{},
		&mensagemModel.MensagemModel{},
	))

	f := lidaFixture{db: db, escolaID: uuid.New()}

	aluno := alunoModel.AlunoModel{AlunoEscolaID: f.escolaID, AlunoNome: "Aluno Teste", AlunoIsActive: true}
	require.NoError(t, db.Create(&aluno).Error)

	f.resp = tgModel.ResponsavelModel{ResponsavelEscolaID: f.escolaID, ResponsavelUserID: uuid.New()}
	require.NoError(t, db.Create(&f.resp).Error)
	require.NoError(t, db.Create(&tgModel.AlunoResponsavelModel{
		AlunoResponsavelEscolaID:      f.escolaID,
		AlunoResponsavelAlunoID:       aluno.AlunoID,
		AlunoResponsavelResponsavelID: f.resp.ResponsavelID,
	}).Error)

	f.outro = tgModel.ResponsavelModel{ResponsavelEscolaID: f.escolaID, ResponsavelUserID: uuid.New()}
	require.NoError(t, db.Create(&f.outro).Error)

	f.msg = mensagemModel.MensagemModel{
		MensagemEscolaID:    f.escolaID,
		MensagemProfessorID: uuid.New(),
		MensagemAlunoID:     aluno.AlunoID,
		MensagemTitulo:      "Recado",
		MensagemCorpo:       "corpo",
	}
	require.NoError(t, db.Create(&f.msg).Error)
	return f
}

func appComIdentidade(db *gorm.DB, ident authz.Identity, escolaID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocIdentity, ident)
		c.Locals(helperAuth.LocEscolaID, escolaID)
		return c.Next()
	})
	ctl := NewMensagemController(db)
	app.Patch("/mensagens/:id/lida", ctl.MarcarLida)
	return app
}

func marcaLida(t *testing.T, app *fiber.App, id uuid.UUID) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/mensagens/"+id.String()+"/lida", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMarcarLida_IdempotentePreservaPrimeiroLidaEm(t *testing.T) {
	f := setupLida(t)

	ident := authz.Identity{
		UserID:         f.resp.ResponsavelUserID,
		Papel:          authz.PapelResponsavel,
		ResponsavelIDs: []uuid.UUID{f.resp.ResponsavelID},
	}
	app := appComIdentidade(f.db, ident, f.escolaID)

	resp := marcaLida(t, app, f.msg.MensagemID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var depois mensagemModel.MensagemModel
	require.NoError(t, f.db.First(&depois, "mensagem_id = ?", f.msg.MensagemID).Error)
	require.True(t, depois.MensagemLida)
	require.NotNil(t, depois.MensagemLidaEm)
	primeira := *depois.MensagemLidaEm

	time.Sleep(10 * time.Millisecond)

	resp = marcaLida(t, app, f.msg.MensagemID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, f.db.First(&depois, "mensagem_id = ?", f.msg.MensagemID).Error)
	require.NotNil(t, depois.MensagemLidaEm)
	assert.True(t, depois.MensagemLidaEm.Equal(primeira), "repetir a marcação não pode mover o lida_em")
}

func TestMarcarLida_ResponsavelDeOutroAlunoRecebe404(t *testing.T) {
	f := setupLida(t)

	ident := authz.Identity{
		UserID:         f.outro.ResponsavelUserID,
		Papel:          authz.PapelResponsavel,
		ResponsavelIDs: []uuid.UUID{f.outro.ResponsavelID},
	}
	app := appComIdentidade(f.db, ident, f.escolaID)

	resp := marcaLida(t, app, f.msg.MensagemID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var depois mensagemModel.MensagemModel
	require.NoError(t, f.db.First(&depois, "mensagem_id = ?", f.msg.MensagemID).Error)
	assert.False(t, depois.MensagemLida)
}

func TestMarcarLida_ProfessorNaoMarca(t *testing.T) {
	f := setupLida(t)

	ident := authz.Identity{
		UserID:      uuid.New(),
		Papel:       authz.PapelProfessor,
		ProfessorID: f.msg.MensagemProfessorID,
	}
	app := appComIdentidade(f.db, ident, f.escolaID)

	resp := marcaLida(t, app, f.msg.MensagemID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
