package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

/* =========================================================
   MODEL: professores
   ========================================================= */

// ProfessorModel liga exatamente um user a uma escola. A autoria de provas,
// exercícios, mensagens e notas referencia o professor_id, nunca o user_id.
type ProfessorModel struct {
	ProfessorID       uuid.UUID `gorm:"column:professor_id;type:uuid;primaryKey" json:"professor_id"`
	ProfessorEscolaID uuid.UUID `gorm:"column:professor_escola_id;type:uuid;not null;index" json:"professor_escola_id"`
	ProfessorUserID   uuid.UUID `gorm:"column:professor_user_id;type:uuid;not null;index" json:"professor_user_id"`

	ProfessorIsActive bool `gorm:"column:professor_is_active;not null;default:true" json:"professor_is_active"`

	ProfessorCreatedAt time.Time      `gorm:"column:professor_created_at;autoCreateTime" json:"professor_created_at"`
	ProfessorUpdatedAt time.Time      `gorm:"column:professor_updated_at;autoUpdateTime" json:"professor_updated_at"`
	ProfessorDeletedAt gorm.DeletedAt `gorm:"column:professor_deleted_at;index" json:"professor_deleted_at,omitempty"`
}

func (ProfessorModel) TableName() string { return database.Table("professores") }

func (m *ProfessorModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProfessorID == uuid.Nil {
		m.ProfessorID = uuid.New()
	}
	return nil
}

/* =========================================================
   PIVOTS: professor_turma / professor_disciplina
   ========================================================= */

type ProfessorTurmaModel struct {
	ProfessorTurmaID          uuid.UUID `gorm:"column:professor_turma_id;type:uuid;primaryKey" json:"professor_turma_id"`
	ProfessorTurmaEscolaID    uuid.UUID `gorm:"column:professor_turma_escola_id;type:uuid;not null;index" json:"professor_turma_escola_id"`
	ProfessorTurmaProfessorID uuid.UUID `gorm:"column:professor_turma_professor_id;type:uuid;not null;index" json:"professor_turma_professor_id"`
	ProfessorTurmaTurmaID     uuid.UUID `gorm:"column:professor_turma_turma_id;type:uuid;not null;index" json:"professor_turma_turma_id"`

	ProfessorTurmaCreatedAt time.Time `gorm:"column:professor_turma_created_at;autoCreateTime" json:"professor_turma_created_at"`
}

func (ProfessorTurmaModel) TableName() string { return database.Table("professor_turma") }

func (m *ProfessorTurmaModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProfessorTurmaID == uuid.Nil {
		m.ProfessorTurmaID = uuid.New()
	}
	return nil
}

type ProfessorDisciplinaModel struct {
	ProfessorDisciplinaID           uuid.UUID `gorm:"column:professor_disciplina_id;type:uuid;primaryKey" json:"professor_disciplina_id"`
	ProfessorDisciplinaEscolaID     uuid.UUID `gorm:"column:professor_disciplina_escola_id;type:uuid;not null;index" json:"professor_disciplina_escola_id"`
	ProfessorDisciplinaProfessorID  uuid.UUID `gorm:"column:professor_disciplina_professor_id;type:uuid;not null;index" json:"professor_disciplina_professor_id"`
	ProfessorDisciplinaDisciplinaID uuid.UUID `gorm:"column:professor_disciplina_disciplina_id;type:uuid;not null;index" json:"professor_disciplina_disciplina_id"`

	ProfessorDisciplinaCreatedAt time.Time `gorm:"column:professor_disciplina_created_at;autoCreateTime" json:"professor_disciplina_created_at"`
}

func (ProfessorDisciplinaModel) TableName() string { return database.Table("professor_disciplina") }

func (m *ProfessorDisciplinaModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProfessorDisciplinaID == uuid.Nil {
		m.ProfessorDisciplinaID = uuid.New()
	}
	return nil
}
