package model

import (
	"time"

	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

// TokenBlacklist guarda o HMAC (hex) de access tokens web revogados no logout.
type TokenBlacklist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Token     string         `gorm:"type:text;not null;unique" json:"token"`
	ExpiredAt time.Time      `json:"expired_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TokenBlacklist) TableName() string { return database.Table("token_blacklist") }
