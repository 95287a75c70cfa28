package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

type DisciplinaModel struct {
	DisciplinaID       uuid.UUID `gorm:"column:disciplina_id;type:uuid;primaryKey" json:"disciplina_id"`
	DisciplinaEscolaID uuid.UUID `gorm:"column:disciplina_escola_id;type:uuid;not null;index" json:"disciplina_escola_id"`

	DisciplinaNome string `gorm:"column:disciplina_nome;size:120;not null" json:"disciplina_nome" validate:"required,min=2,max=120"`

	DisciplinaIsActive bool `gorm:"column:disciplina_is_active;not null;default:true" json:"disciplina_is_active"`

	DisciplinaCreatedAt time.Time      `gorm:"column:disciplina_created_at;autoCreateTime" json:"disciplina_created_at"`
	DisciplinaUpdatedAt time.Time      `gorm:"column:disciplina_updated_at;autoUpdateTime" json:"disciplina_updated_at"`
	DisciplinaDeletedAt gorm.DeletedAt `gorm:"column:disciplina_deleted_at;index" json:"disciplina_deleted_at,omitempty"`
}

func (DisciplinaModel) TableName() string { return database.Table("disciplinas") }

func (m *DisciplinaModel) BeforeCreate(tx *gorm.DB) error {
	if m.DisciplinaID == uuid.Nil {
		m.DisciplinaID = uuid.New()
	}
	return nil
}
