package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

type NotaModel struct {
	NotaID          uuid.UUID `gorm:"column:nota_id;type:uuid;primaryKey" json:"nota_id"`
	NotaEscolaID    uuid.UUID `gorm:"column:nota_escola_id;type:uuid;not null;index" json:"nota_escola_id"`
	NotaProfessorID uuid.UUID `gorm:"column:nota_professor_id;type:uuid;not null;index" json:"nota_professor_id"`

	NotaAlunoID      uuid.UUID `gorm:"column:nota_aluno_id;type:uuid;not null;index" json:"nota_aluno_id"`
	NotaDisciplinaID uuid.UUID `gorm:"column:nota_disciplina_id;type:uuid;not null;index" json:"nota_disciplina_id"`

	NotaValor    float64 `gorm:"column:nota_valor;not null" json:"nota_valor" validate:"min=0,max=10"`
	NotaBimestre int     `gorm:"column:nota_bimestre;not null" json:"nota_bimestre" validate:"required,min=1,max=4"`

	NotaCreatedAt time.Time      `gorm:"column:nota_created_at;autoCreateTime" json:"nota_created_at"`
	NotaUpdatedAt time.Time      `gorm:"column:nota_updated_at;autoUpdateTime" json:"nota_updated_at"`
	NotaDeletedAt gorm.DeletedAt `gorm:"column:nota_deleted_at;index" json:"nota_deleted_at,omitempty"`
}

func (NotaModel) TableName() string { return database.Table("notas") }

func (m *NotaModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotaID == uuid.Nil {
		m.NotaID = uuid.New()
	}
	return nil
}
