package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

// MensagemModel — enviada por um professor para um aluno (e opcionalmente
// vinculada a uma turma). O responsável ligado ao aluno lê e marca como lida;
// a marcação é idempotente e preserva o primeiro lida_em.
type MensagemModel struct {
	MensagemID          uuid.UUID `gorm:"column:mensagem_id;type:uuid;primaryKey" json:"mensagem_id"`
	MensagemEscolaID    uuid.UUID `gorm:"column:mensagem_escola_id;type:uuid;not null;index" json:"mensagem_escola_id"`
	MensagemProfessorID uuid.UUID `gorm:"column:mensagem_professor_id;type:uuid;not null;index" json:"mensagem_professor_id"`

	MensagemAlunoID uuid.UUID  `gorm:"column:mensagem_aluno_id;type:uuid;not null;index" json:"mensagem_aluno_id"`
	MensagemTurmaID *uuid.UUID `gorm:"column:mensagem_turma_id;type:uuid" json:"mensagem_turma_id,omitempty"`

	MensagemTitulo string `gorm:"column:mensagem_titulo;size:160;not null" json:"mensagem_titulo" validate:"required,min=1,max=160"`
	MensagemCorpo  string `gorm:"column:mensagem_corpo;type:text;not null" json:"mensagem_corpo" validate:"required"`

	// URLs públicas dos anexos (PDF/imagem)
	MensagemAnexos datatypes.JSON `gorm:"column:mensagem_anexos;type:jsonb" json:"mensagem_anexos,omitempty"`

	MensagemLida   bool       `gorm:"column:mensagem_lida;not null;default:false" json:"mensagem_lida"`
	MensagemLidaEm *time.Time `gorm:"column:mensagem_lida_em" json:"mensagem_lida_em,omitempty"`

	MensagemCreatedAt time.Time      `gorm:"column:mensagem_created_at;autoCreateTime" json:"mensagem_created_at"`
	MensagemUpdatedAt time.Time      `gorm:"column:mensagem_updated_at;autoUpdateTime" json:"mensagem_updated_at"`
	MensagemDeletedAt gorm.DeletedAt `gorm:"column:mensagem_deleted_at;index" json:"mensagem_deleted_at,omitempty"`
}

func (MensagemModel) TableName() string { return database.Table("mensagens") }

func (m *MensagemModel) BeforeCreate(tx *gorm.DB) error {
	if m.MensagemID == uuid.Nil {
		m.MensagemID = uuid.New()
	}
	return nil
}
