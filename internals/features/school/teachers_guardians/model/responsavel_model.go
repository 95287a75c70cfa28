package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

// ResponsavelModel — um mesmo user pode ter registros de responsável em
// várias escolas; cada resolução de acesso é escopada a uma escola por vez.
type ResponsavelModel struct {
	ResponsavelID       uuid.UUID `gorm:"column:responsavel_id;type:uuid;primaryKey" json:"responsavel_id"`
	ResponsavelEscolaID uuid.UUID `gorm:"column:responsavel_escola_id;type:uuid;not null;index" json:"responsavel_escola_id"`
	ResponsavelUserID   uuid.UUID `gorm:"column:responsavel_user_id;type:uuid;not null;index" json:"responsavel_user_id"`

	ResponsavelCreatedAt time.Time      `gorm:"column:responsavel_created_at;autoCreateTime" json:"responsavel_created_at"`
	ResponsavelUpdatedAt time.Time      `gorm:"column:responsavel_updated_at;autoUpdateTime" json:"responsavel_updated_at"`
	ResponsavelDeletedAt gorm.DeletedAt `gorm:"column:responsavel_deleted_at;index" json:"responsavel_deleted_at,omitempty"`
}

func (ResponsavelModel) TableName() string { return database.Table("responsaveis") }

func (m *ResponsavelModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResponsavelID == uuid.Nil {
		m.ResponsavelID = uuid.New()
	}
	return nil
}

// AlunoResponsavelModel é o pivô aluno ↔ responsável, com a flag de
// responsável principal.
type AlunoResponsavelModel struct {
	AlunoResponsavelID            uuid.UUID `gorm:"column:aluno_responsavel_id;type:uuid;primaryKey" json:"aluno_responsavel_id"`
	AlunoResponsavelEscolaID      uuid.UUID `gorm:"column:aluno_responsavel_escola_id;type:uuid;not null;index" json:"aluno_responsavel_escola_id"`
	AlunoResponsavelAlunoID       uuid.UUID `gorm:"column:aluno_responsavel_aluno_id;type:uuid;not null;index" json:"aluno_responsavel_aluno_id"`
	AlunoResponsavelResponsavelID uuid.UUID `gorm:"column:aluno_responsavel_responsavel_id;type:uuid;not null;index" json:"aluno_responsavel_responsavel_id"`

	AlunoResponsavelPrincipal bool `gorm:"column:aluno_responsavel_principal;not null;default:false" json:"aluno_responsavel_principal"`

	AlunoResponsavelCreatedAt time.Time `gorm:"column:aluno_responsavel_created_at;autoCreateTime" json:"aluno_responsavel_created_at"`
}

func (AlunoResponsavelModel) TableName() string { return database.Table("aluno_responsavel") }

func (m *AlunoResponsavelModel) BeforeCreate(tx *gorm.DB) error {
	if m.AlunoResponsavelID == uuid.Nil {
		m.AlunoResponsavelID = uuid.New()
	}
	return nil
}
