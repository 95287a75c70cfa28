package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

// EscolaModel é o tenant: toda entidade escopada carrega *_escola_id e o
// acesso entre escolas é sempre negado, independente do papel.
type EscolaModel struct {
	EscolaID   uuid.UUID `gorm:"column:escola_id;type:uuid;primaryKey" json:"escola_id"`
	EscolaNome string    `gorm:"column:escola_nome;size:160;not null" json:"escola_nome" validate:"required,min=3,max=160"`

	// slug único, usado na resolução por subdomínio
	EscolaSlug string `gorm:"column:escola_slug;size:80;uniqueIndex;not null" json:"escola_slug" validate:"required,min=2,max=80"`

	EscolaIsActive bool `gorm:"column:escola_is_active;not null;default:true" json:"escola_is_active"`

	EscolaCreatedAt time.Time      `gorm:"column:escola_created_at;autoCreateTime" json:"escola_created_at"`
	EscolaUpdatedAt time.Time      `gorm:"column:escola_updated_at;autoUpdateTime" json:"escola_updated_at"`
	EscolaDeletedAt gorm.DeletedAt `gorm:"column:escola_deleted_at;index" json:"escola_deleted_at,omitempty"`
}

func (EscolaModel) TableName() string { return database.Table("escolas") }

func (e *EscolaModel) BeforeCreate(tx *gorm.DB) error {
	if e.EscolaID == uuid.Nil {
		e.EscolaID = uuid.New()
	}
	return nil
}
