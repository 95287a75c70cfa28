package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

// TurmaModel representa a tabela `turmas`
type TurmaModel struct {
	TurmaID       uuid.UUID `gorm:"column:turma_id;type:uuid;primaryKey" json:"turma_id"`
	TurmaEscolaID uuid.UUID `gorm:"column:turma_escola_id;type:uuid;not null;index" json:"turma_escola_id"`

	TurmaNome      string `gorm:"column:turma_nome;size:120;not null" json:"turma_nome" validate:"required,min=1,max=120"`
	TurmaAnoLetivo int    `gorm:"column:turma_ano_letivo;not null" json:"turma_ano_letivo" validate:"required,min=2000,max=2100"`

	TurmaIsActive bool `gorm:"column:turma_is_active;not null;default:true" json:"turma_is_active"`

	TurmaCreatedAt time.Time      `gorm:"column:turma_created_at;autoCreateTime" json:"turma_created_at"`
	TurmaUpdatedAt time.Time      `gorm:"column:turma_updated_at;autoUpdateTime" json:"turma_updated_at"`
	TurmaDeletedAt gorm.DeletedAt `gorm:"column:turma_deleted_at;index" json:"turma_deleted_at,omitempty"`
}

func (TurmaModel) TableName() string { return database.Table("turmas") }

func (m *TurmaModel) BeforeCreate(tx *gorm.DB) error {
	if m.TurmaID == uuid.Nil {
		m.TurmaID = uuid.New()
	}
	return nil
}
