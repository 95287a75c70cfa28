package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"escolar_backend/internals/configs"
	database "escolar_backend/internals/databases"
	escolaModel "escolar_backend/internals/features/school/escolas/model"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
	authModel "escolar_backend/internals/features/users/auth/model"
	userModel "escolar_backend/internals/features/users/user/model"
	helper "escolar_backend/internals/helpers"
)

const senhaTeste = "senha-forte-123"

func newMobileTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	database.SetSchemaPrefix("")
	configs.APITokenSecret = "segredo-de-teste"

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&escolaModel.EscolaModel{},
		&tgModel.ProfessorModel{},
		&tgModel.ResponsavelModel{},
		&authModel.ApiToken{},
	))

	ctl := NewMobileAuthController(db)
	app := fiber.New()
	app.Post("/api/mobile/login", ctl.Login)
	app.Post("/api/mobile/logout", ctl.Logout)
	return app, db
}

func seedMobileUser(t *testing.T, db *gorm.DB, cpf string, ativo bool) userModel.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senhaTeste), bcrypt.MinCost)
	require.NoError(t, err)
	u := userModel.UserModel{
		UserNome:     "Usuário Mobile",
		UserEmail:    cpf + "@teste.com",
		UserCPF:      cpf,
		UserSenha:    string(hash),
		UserIsActive: ativo,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func doLogin(t *testing.T, app *fiber.App, cpf, senha string) *http.Response {
	t.Helper()
	body, err := json.Marshal(fiber.Map{"cpf": cpf, "senha": senha})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/mobile/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestMobileLogin_ProfessorRecebeTokenOpaco(t *testing.T) {
	app, db := newMobileTestApp(t)

	escola := escolaModel.EscolaModel{EscolaNome: "Escola A", EscolaSlug: "escola-a", EscolaIsActive: true}
	require.NoError(t, db.Create(&escola).Error)

	u := seedMobileUser(t, db, "12345678909", true)
	require.NoError(t, db.Create(&tgModel.ProfessorModel{
		ProfessorEscolaID: escola.EscolaID,
		ProfessorUserID:   u.UserID,
		ProfessorIsActive: true,
	}).Error)

	// o CPF chega formatado; o lookup é pela forma canônica
	resp := doLogin(t, app, "123.456.789-09", senhaTeste)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	token := data["token"].(string)
	assert.Len(t, token, 96)

	user := data["user"].(map[string]any)
	assert.Equal(t, "teacher", user["type"])
	assert.Equal(t, "12345678909", user["cpf"])

	// persiste só o HMAC, nunca o token em claro
	var at authModel.ApiToken
	require.NoError(t, db.First(&at).Error)
	assert.Equal(t, helper.HashOpaqueToken(configs.APITokenSecret, token), at.ApiTokenHash)
	assert.Equal(t, u.UserID, at.ApiTokenUserID)
}

func TestMobileLogin_ResponsavelRecebeTypeResponsavel(t *testing.T) {
	app, db := newMobileTestApp(t)

	escola := escolaModel.EscolaModel{EscolaNome: "Escola A", EscolaSlug: "escola-a", EscolaIsActive: true}
	require.NoError(t, db.Create(&escola).Error)

	u := seedMobileUser(t, db, "98765432100", true)
	require.NoError(t, db.Create(&tgModel.ResponsavelModel{
		ResponsavelEscolaID: escola.EscolaID,
		ResponsavelUserID:   u.UserID,
	}).Error)

	resp := doLogin(t, app, "98765432100", senhaTeste)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "responsavel", user["type"])
}

// Todas as recusas respondem igual: 422 com erro genérico no campo cpf.
// Nenhum caso revela se o CPF existe.
func TestMobileLogin_RecusaGenerica(t *testing.T) {
	app, db := newMobileTestApp(t)

	escola := escolaModel.EscolaModel{EscolaNome: "Escola A", EscolaSlug: "escola-a", EscolaIsActive: true}
	require.NoError(t, db.Create(&escola).Error)

	prof := seedMobileUser(t, db, "12345678909", true)
	require.NoError(t, db.Create(&tgModel.ProfessorModel{
		ProfessorEscolaID: escola.EscolaID,
		ProfessorUserID:   prof.UserID,
		ProfessorIsActive: true,
	}).Error)

	// sem vínculo mobile (nem professor nem responsável)
	seedMobileUser(t, db, "11122233344", true)
	// conta desativada
	inativo := seedMobileUser(t, db, "55566677788", false)
	require.NoError(t, db.Create(&tgModel.ProfessorModel{
		ProfessorEscolaID: escola.EscolaID,
		ProfessorUserID:   inativo.UserID,
		ProfessorIsActive: true,
	}).Error)

	casos := []struct {
		nome  string
		cpf   string
		senha string
	}{
		{"cpf desconhecido", "00011122233", senhaTeste},
		{"senha errada", "12345678909", "senha-errada"},
		{"papel nao atendido", "11122233344", senhaTeste},
		{"conta inativa", "55566677788", senhaTeste},
		{"cpf vazio", "", senhaTeste},
	}
	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			resp := doLogin(t, app, caso.cpf, caso.senha)
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			body := decodeBody(t, resp)
			errs := body["errors"].(map[string]any)
			msgs := errs["cpf"].([]any)
			require.Len(t, msgs, 1)
			assert.Equal(t, "CPF ou senha inválidos.", msgs[0])
		})
	}
}

func TestMobileLogout_RevogaSomenteOTokenApresentado(t *testing.T) {
	app, db := newMobileTestApp(t)

	escola := escolaModel.EscolaModel{EscolaNome: "Escola A", EscolaSlug: "escola-a", EscolaIsActive: true}
	require.NoError(t, db.Create(&escola).Error)

	u := seedMobileUser(t, db, "12345678909", true)
	require.NoError(t, db.Create(&tgModel.ProfessorModel{
		ProfessorEscolaID: escola.EscolaID,
		ProfessorUserID:   u.UserID,
		ProfessorIsActive: true,
	}).Error)

	// duas sessões do mesmo usuário
	resp1 := doLogin(t, app, "12345678909", senhaTeste)
	token1 := decodeBody(t, resp1)["data"].(map[string]any)["token"].(string)
	resp2 := doLogin(t, app, "12345678909", senhaTeste)
	token2 := decodeBody(t, resp2)["data"].(map[string]any)["token"].(string)
	require.NotEqual(t, token1, token2)

	req := httptest.NewRequest(http.MethodPost, "/api/mobile/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token1)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var revogado authModel.ApiToken
	require.NoError(t, db.
		Where("api_token_hash = ?", helper.HashOpaqueToken(configs.APITokenSecret, token1)).
		First(&revogado).Error)
	assert.NotNil(t, revogado.ApiTokenRevokedAt)

	var vivo authModel.ApiToken
	require.NoError(t, db.
		Where("api_token_hash = ?", helper.HashOpaqueToken(configs.APITokenSecret, token2)).
		First(&vivo).Error)
	assert.Nil(t, vivo.ApiTokenRevokedAt)
}

func TestMobileLogin_ErroDeBancoRetorna500(t *testing.T) {
	app, db := newMobileTestApp(t)
	seedMobileUser(t, db, "12345678909", true)

	// sem as tabelas de papel a consulta falha de verdade; isso não pode
	// passar pela recusa genérica de credencial
	require.NoError(t, db.Exec("DROP TABLE professores").Error)
	require.NoError(t, db.Exec("DROP TABLE responsaveis").Error)

	resp := doLogin(t, app, "123.456.789-09", senhaTeste)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
