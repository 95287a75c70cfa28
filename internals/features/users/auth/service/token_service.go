// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escolar_backend/internals/configs"
	authModel "escolar_backend/internals/features/users/auth/model"
	userModel "escolar_backend/internals/features/users/user/model"
	helper "escolar_backend/internals/helpers"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 30 * 24 * time.Hour
	ApiTokenTTL     = 90 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

/* =========================================================
   JWT (superfície web)
   ========================================================= */

func buildAccessClaims(u *userModel.UserModel, escolaID *uuid.UUID, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"id":        u.UserID.String(),
		"user_nome": u.UserNome,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	if escolaID != nil && *escolaID != uuid.Nil {
		claims["escola_id"] = escolaID.String()
	}
	return claims
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"id":  userID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(RefreshTokenTTL).Unix(),
	}
}

func signClaims(claims jwt.MapClaims, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("segredo JWT ausente")
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// computeRefreshHash — o refresh token nunca vai em claro para o banco.
func computeRefreshHash(token, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

// IssueTokenPair emite access + refresh e persiste o hash do refresh.
func IssueTokenPair(db *gorm.DB, u *userModel.UserModel, escolaID *uuid.UUID, ua, ip string) (access, refresh string, err error) {
	now := nowUTC()

	access, err = signClaims(buildAccessClaims(u, escolaID, now), configs.JWTSecret)
	if err != nil {
		return "", "", err
	}
	refresh, err = signClaims(buildRefreshClaims(u.UserID, now), configs.JWTRefreshSecret)
	if err != nil {
		return "", "", err
	}

	rt := authModel.RefreshToken{
		UserID:    u.UserID,
		TokenHash: computeRefreshHash(refresh, configs.JWTRefreshSecret),
		ExpiresAt: now.Add(RefreshTokenTTL),
	}
	if ua != "" {
		rt.UserAgent = &ua
	}
	if ip != "" {
		rt.IP = &ip
	}
	if err := db.Create(&rt).Error; err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ParseRefreshToken valida assinatura e expiração e devolve o user_id.
func ParseRefreshToken(raw string) (uuid.UUID, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, errors.New("não é um refresh token")
	}
	rawID, _ := claims["id"].(string)
	return uuid.Parse(rawID)
}

// RotateRefreshToken revoga o hash apresentado; devolve erro se ele não
// existir ativo (reuso de token antigo é tratado como inválido).
func RotateRefreshToken(db *gorm.DB, userID uuid.UUID, raw string) error {
	hash := computeRefreshHash(raw, configs.JWTRefreshSecret)
	now := nowUTC()
	res := db.Model(&authModel.RefreshToken{}).
		Where("user_id = ? AND token_hash = ? AND revoked_at IS NULL AND expires_at > ?", userID, hash, now).
		Update("revoked_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("refresh token desconhecido ou já usado")
	}
	return nil
}

/* =========================================================
   Blacklist (logout web)
   ========================================================= */

// BlacklistAccessToken guarda o HMAC do access token até a expiração dele.
func BlacklistAccessToken(db *gorm.DB, raw string) error {
	ttl := resolveBlacklistTTL(raw)
	entry := authModel.TokenBlacklist{
		Token:     helper.HashOpaqueToken(configs.APITokenSecret, raw),
		ExpiredAt: nowUTC().Add(ttl),
	}
	// token já listado não é erro
	err := db.Create(&entry).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// resolveBlacklistTTL lê o exp do próprio token; fallback no TTL padrão.
func resolveBlacklistTTL(raw string) time.Duration {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			if d := time.Until(time.Unix(int64(exp), 0)); d > 0 {
				return d
			}
		}
	}
	return AccessTokenTTL
}

/* =========================================================
   API tokens (superfície mobile)
   ========================================================= */

// IssueApiToken gera o bearer opaco do app e persiste só o HMAC.
func IssueApiToken(db *gorm.DB, userID uuid.UUID, label string) (string, error) {
	raw, err := helper.NewOpaqueToken()
	if err != nil {
		return "", err
	}
	token := authModel.ApiToken{
		ApiTokenUserID:    userID,
		ApiTokenHash:      helper.HashOpaqueToken(configs.APITokenSecret, raw),
		ApiTokenExpiresAt: nowUTC().Add(ApiTokenTTL),
	}
	if label != "" {
		token.ApiTokenLabel = &label
	}
	if err := db.Create(&token).Error; err != nil {
		return "", err
	}
	return raw, nil
}

// RevokeApiToken revoga apenas o token apresentado; outras sessões do
// mesmo usuário continuam válidas.
func RevokeApiToken(db *gorm.DB, raw string) error {
	hash := helper.HashOpaqueToken(configs.APITokenSecret, raw)
	return db.Model(&authModel.ApiToken{}).
		Where("api_token_hash = ? AND api_token_revoked_at IS NULL", hash).
		Update("api_token_revoked_at", nowUTC()).Error
}
