package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

const (
	MatriculaStatusAtiva  = "ativa"
	MatriculaStatusInativa = "inativa"
)

// MatriculaModel é o vínculo aluno ↔ turma com status e data. Apenas
// matrículas `ativa` contam para o escopo de acesso; a rematrícula troca a
// turma numa única transação (nunca duas ativas, nunca zero por falha
// parcial).
type MatriculaModel struct {
	MatriculaID       uuid.UUID `gorm:"column:matricula_id;type:uuid;primaryKey" json:"matricula_id"`
	MatriculaEscolaID uuid.UUID `gorm:"column:matricula_escola_id;type:uuid;not null;index" json:"matricula_escola_id"`
	MatriculaAlunoID  uuid.UUID `gorm:"column:matricula_aluno_id;type:uuid;not null;index" json:"matricula_aluno_id"`
	MatriculaTurmaID  uuid.UUID `gorm:"column:matricula_turma_id;type:uuid;not null;index" json:"matricula_turma_id"`

	MatriculaStatus string    `gorm:"column:matricula_status;type:text;not null;default:'ativa'" json:"matricula_status"`
	MatriculaData   time.Time `gorm:"column:matricula_data;not null" json:"matricula_data"`

	MatriculaCreatedAt time.Time `gorm:"column:matricula_created_at;autoCreateTime" json:"matricula_created_at"`
	MatriculaUpdatedAt time.Time `gorm:"column:matricula_updated_at;autoUpdateTime" json:"matricula_updated_at"`
}

func (MatriculaModel) TableName() string { return database.Table("matriculas") }

func (m *MatriculaModel) BeforeCreate(tx *gorm.DB) error {
	if m.MatriculaID == uuid.Nil {
		m.MatriculaID = uuid.New()
	}
	if m.MatriculaData.IsZero() {
		m.MatriculaData = time.Now().UTC()
	}
	return nil
}
