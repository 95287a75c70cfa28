package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

type AlunoModel struct {
	AlunoID       uuid.UUID `gorm:"column:aluno_id;type:uuid;primaryKey" json:"aluno_id"`
	AlunoEscolaID uuid.UUID `gorm:"column:aluno_escola_id;type:uuid;not null;index" json:"aluno_escola_id"`

	AlunoNome           string     `gorm:"column:aluno_nome;size:120;not null" json:"aluno_nome" validate:"required,min=3,max=120"`
	AlunoDataNascimento *time.Time `gorm:"column:aluno_data_nascimento;type:date" json:"aluno_data_nascimento,omitempty"`

	AlunoIsActive bool `gorm:"column:aluno_is_active;not null;default:true" json:"aluno_is_active"`

	AlunoCreatedAt time.Time      `gorm:"column:aluno_created_at;autoCreateTime" json:"aluno_created_at"`
	AlunoUpdatedAt time.Time      `gorm:"column:aluno_updated_at;autoUpdateTime" json:"aluno_updated_at"`
	AlunoDeletedAt gorm.DeletedAt `gorm:"column:aluno_deleted_at;index" json:"aluno_deleted_at,omitempty"`
}

func (AlunoModel) TableName() string { return database.Table("alunos") }

func (m *AlunoModel) BeforeCreate(tx *gorm.DB) error {
	if m.AlunoID == uuid.Nil {
		m.AlunoID = uuid.New()
	}
	return nil
}
