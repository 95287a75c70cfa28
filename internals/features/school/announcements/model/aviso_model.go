package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

// AvisoModel — comunicado da escola. O público-alvo é um conjunto de papéis
// (professor, responsavel...); vazio = todos da escola.
type AvisoModel struct {
	AvisoID       uuid.UUID `gorm:"column:aviso_id;type:uuid;primaryKey" json:"aviso_id"`
	AvisoEscolaID uuid.UUID `gorm:"column:aviso_escola_id;type:uuid;not null;index" json:"aviso_escola_id"`
	AvisoUserID   uuid.UUID `gorm:"column:aviso_user_id;type:uuid;not null;index" json:"aviso_user_id"`

	AvisoTitulo string `gorm:"column:aviso_titulo;size:160;not null" json:"aviso_titulo" validate:"required,min=1,max=160"`
	AvisoCorpo  string `gorm:"column:aviso_corpo;type:text;not null" json:"aviso_corpo" validate:"required"`

	AvisoPapeisAlvo pq.StringArray `gorm:"column:aviso_papeis_alvo;type:text[]" json:"aviso_papeis_alvo,omitempty"`
	AvisoTurmaID    *uuid.UUID     `gorm:"column:aviso_turma_id;type:uuid" json:"aviso_turma_id,omitempty"`

	AvisoCreatedAt time.Time      `gorm:"column:aviso_created_at;autoCreateTime" json:"aviso_created_at"`
	AvisoUpdatedAt time.Time      `gorm:"column:aviso_updated_at;autoUpdateTime" json:"aviso_updated_at"`
	AvisoDeletedAt gorm.DeletedAt `gorm:"column:aviso_deleted_at;index" json:"aviso_deleted_at,omitempty"`
}

func (AvisoModel) TableName() string { return database.Table("avisos") }

func (m *AvisoModel) BeforeCreate(tx *gorm.DB) error {
	if m.AvisoID == uuid.Nil {
		m.AvisoID = uuid.New()
	}
	return nil
}
