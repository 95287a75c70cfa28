package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

// ApiToken é o bearer token revogável da API mobile. Guardamos apenas o
// HMAC-SHA256 (hex); o logout revoga somente o token apresentado.
type ApiToken struct {
	ApiTokenID     uuid.UUID `gorm:"column:api_token_id;type:uuid;primaryKey" json:"api_token_id"`
	ApiTokenUserID uuid.UUID `gorm:"column:api_token_user_id;type:uuid;not null;index" json:"api_token_user_id"`

	ApiTokenHash  string  `gorm:"column:api_token_hash;type:text;not null;uniqueIndex" json:"-"`
	ApiTokenLabel *string `gorm:"column:api_token_label;size:80" json:"api_token_label,omitempty"`

	ApiTokenLastUsedAt *time.Time `gorm:"column:api_token_last_used_at" json:"api_token_last_used_at,omitempty"`
	ApiTokenExpiresAt  time.Time  `gorm:"column:api_token_expires_at;not null" json:"api_token_expires_at"`
	ApiTokenRevokedAt  *time.Time `gorm:"column:api_token_revoked_at" json:"api_token_revoked_at,omitempty"`

	ApiTokenCreatedAt time.Time `gorm:"column:api_token_created_at;autoCreateTime" json:"api_token_created_at"`
}

func (ApiToken) TableName() string { return database.Table("api_tokens") }

func (m *ApiToken) BeforeCreate(tx *gorm.DB) error {
	if m.ApiTokenID == uuid.Nil {
		m.ApiTokenID = uuid.New()
	}
	return nil
}
