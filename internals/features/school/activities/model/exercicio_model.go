package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

type ExercicioModel struct {
	ExercicioID          uuid.UUID `gorm:"column:exercicio_id;type:uuid;primaryKey" json:"exercicio_id"`
	ExercicioEscolaID    uuid.UUID `gorm:"column:exercicio_escola_id;type:uuid;not null;index" json:"exercicio_escola_id"`
	ExercicioProfessorID uuid.UUID `gorm:"column:exercicio_professor_id;type:uuid;not null;index" json:"exercicio_professor_id"`

	ExercicioTurmaID      uuid.UUID  `gorm:"column:exercicio_turma_id;type:uuid;not null;index" json:"exercicio_turma_id"`
	ExercicioDisciplinaID *uuid.UUID `gorm:"column:exercicio_disciplina_id;type:uuid" json:"exercicio_disciplina_id,omitempty"`

	ExercicioTitulo     string     `gorm:"column:exercicio_titulo;size:160;not null" json:"exercicio_titulo" validate:"required,min=2,max=160"`
	ExercicioDescricao  *string    `gorm:"column:exercicio_descricao;type:text" json:"exercicio_descricao,omitempty"`
	ExercicioDataEntrega *time.Time `gorm:"column:exercicio_data_entrega;type:date" json:"exercicio_data_entrega,omitempty"`
	ExercicioAnexoURL   *string    `gorm:"column:exercicio_anexo_url;type:text" json:"exercicio_anexo_url,omitempty"`

	ExercicioCreatedAt time.Time      `gorm:"column:exercicio_created_at;autoCreateTime" json:"exercicio_created_at"`
	ExercicioUpdatedAt time.Time      `gorm:"column:exercicio_updated_at;autoUpdateTime" json:"exercicio_updated_at"`
	ExercicioDeletedAt gorm.DeletedAt `gorm:"column:exercicio_deleted_at;index" json:"exercicio_deleted_at,omitempty"`
}

func (ExercicioModel) TableName() string { return database.Table("exercicios") }

func (m *ExercicioModel) BeforeCreate(tx *gorm.DB) error {
	if m.ExercicioID == uuid.Nil {
		m.ExercicioID = uuid.New()
	}
	return nil
}
