package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

// ProvaModel — atividade autorada: só o professor autor (ou um admin) pode
// alterar/excluir depois de criada.
type ProvaModel struct {
	ProvaID          uuid.UUID `gorm:"column:prova_id;type:uuid;primaryKey" json:"prova_id"`
	ProvaEscolaID    uuid.UUID `gorm:"column:prova_escola_id;type:uuid;not null;index" json:"prova_escola_id"`
	ProvaProfessorID uuid.UUID `gorm:"column:prova_professor_id;type:uuid;not null;index" json:"prova_professor_id"`

	ProvaTurmaID      uuid.UUID  `gorm:"column:prova_turma_id;type:uuid;not null;index" json:"prova_turma_id"`
	ProvaDisciplinaID *uuid.UUID `gorm:"column:prova_disciplina_id;type:uuid" json:"prova_disciplina_id,omitempty"`

	ProvaTitulo    string     `gorm:"column:prova_titulo;size:160;not null" json:"prova_titulo" validate:"required,min=2,max=160"`
	ProvaDescricao *string    `gorm:"column:prova_descricao;type:text" json:"prova_descricao,omitempty"`
	ProvaData      *time.Time `gorm:"column:prova_data;type:date" json:"prova_data,omitempty"`
	ProvaAnexoURL  *string    `gorm:"column:prova_anexo_url;type:text" json:"prova_anexo_url,omitempty"`

	ProvaCreatedAt time.Time      `gorm:"column:prova_created_at;autoCreateTime" json:"prova_created_at"`
	ProvaUpdatedAt time.Time      `gorm:"column:prova_updated_at;autoUpdateTime" json:"prova_updated_at"`
	ProvaDeletedAt gorm.DeletedAt `gorm:"column:prova_deleted_at;index" json:"prova_deleted_at,omitempty"`
}

func (ProvaModel) TableName() string { return database.Table("provas") }

func (m *ProvaModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProvaID == uuid.Nil {
		m.ProvaID = uuid.New()
	}
	return nil
}
