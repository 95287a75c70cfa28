package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

const (
	EscolaUsuarioPapelAdminEscola = "admin_escola"
)

// EscolaUsuarioModel é o vínculo user ↔ escola (membership). Um usuário sem
// especialização professor/responsável mas com vínculo ativo é o
// "administrador da escola" do escopo.
type EscolaUsuarioModel struct {
	EscolaUsuarioID       uuid.UUID `gorm:"column:escola_usuario_id;type:uuid;primaryKey" json:"escola_usuario_id"`
	EscolaUsuarioEscolaID uuid.UUID `gorm:"column:escola_usuario_escola_id;type:uuid;not null;index" json:"escola_usuario_escola_id"`
	EscolaUsuarioUserID   uuid.UUID `gorm:"column:escola_usuario_user_id;type:uuid;not null;index" json:"escola_usuario_user_id"`

	EscolaUsuarioPapel    string `gorm:"column:escola_usuario_papel;type:text;not null;default:'admin_escola'" json:"escola_usuario_papel"`
	EscolaUsuarioIsActive bool   `gorm:"column:escola_usuario_is_active;not null;default:true" json:"escola_usuario_is_active"`

	EscolaUsuarioCreatedAt time.Time `gorm:"column:escola_usuario_created_at;autoCreateTime" json:"escola_usuario_created_at"`
	EscolaUsuarioUpdatedAt time.Time `gorm:"column:escola_usuario_updated_at;autoUpdateTime" json:"escola_usuario_updated_at"`
}

func (EscolaUsuarioModel) TableName() string { return database.Table("escola_usuarios") }

func (m *EscolaUsuarioModel) BeforeCreate(tx *gorm.DB) error {
	if m.EscolaUsuarioID == uuid.Nil {
		m.EscolaUsuarioID = uuid.New()
	}
	return nil
}
