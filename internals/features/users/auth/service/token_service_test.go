package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"escolar_backend/internals/configs"
	database "escolar_backend/internals/databases"
	authModel "escolar_backend/internals/features/users/auth/model"
	userModel "escolar_backend/internals/features/users/user/model"
)

func newTokenTestDB(t *testing.T) (*gorm.DB, userModel.UserModel) {
	t.Helper()
	database.SetSchemaPrefix("")
	configs.JWTSecret = "jwt-de-teste"
	configs.JWTRefreshSecret = "refresh-de-teste"
	configs.APITokenSecret = "api-de-teste"

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshToken{},
		&authModel.ApiToken{},
		&authModel.TokenBlacklist{},
	))

	u := userModel.UserModel{
		UserNome:     "Usuário Teste",
		UserEmail:    "token@teste.com",
		UserCPF:      "12345678909",
		UserSenha:    "x",
		UserIsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return db, u
}

func TestIssueTokenPair_PersisteHashDoRefresh(t *testing.T) {
	db, u := newTokenTestDB(t)

	access, refresh, err := IssueTokenPair(db, &u, nil, "ua-teste", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	var row authModel.RefreshToken
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, u.UserID, row.UserID)
	assert.NotEmpty(t, row.TokenHash)
	// nunca o token em claro
	assert.NotEqual(t, []byte(refresh), row.TokenHash)
	assert.Nil(t, row.RevokedAt)
}

func TestRotateRefreshToken_ReusoDetectado(t *testing.T) {
	db, u := newTokenTestDB(t)

	_, refresh, err := IssueTokenPair(db, &u, nil, "", "")
	require.NoError(t, err)

	userID, err := ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, u.UserID, userID)

	require.NoError(t, RotateRefreshToken(db, u.UserID, refresh))

	// o mesmo refresh apresentado de novo já foi revogado
	assert.Error(t, RotateRefreshToken(db, u.UserID, refresh))
}

func TestParseRefreshToken_RecusaLixo(t *testing.T) {
	newTokenTestDB(t)

	_, err := ParseRefreshToken("não-é-um-jwt")
	assert.Error(t, err)
}

func TestIssueApiToken_ERevoke(t *testing.T) {
	db, u := newTokenTestDB(t)

	raw, err := IssueApiToken(db, u.UserID, "app")
	require.NoError(t, err)
	assert.Len(t, raw, 96)

	require.NoError(t, RevokeApiToken(db, raw))

	var row authModel.ApiToken
	require.NoError(t, db.First(&row).Error)
	assert.NotNil(t, row.ApiTokenRevokedAt)
}
