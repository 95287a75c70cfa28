// internals/features/school/messages/dto/mensagem_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	mensagemModel "escolar_backend/internals/features/school/messages/model"
)

type CreateMensagemRequest struct {
	MensagemAlunoID uuid.UUID  `json:"mensagem_aluno_id" validate:"required"`
	MensagemTurmaID *uuid.UUID `json:"mensagem_turma_id" validate:"omitempty"`
	MensagemTitulo  string     `json:"mensagem_titulo" validate:"required,min=1,max=160"`
	MensagemCorpo   string     `json:"mensagem_corpo" validate:"required"`
}

func (r CreateMensagemRequest) ToModel(escolaID, professorID uuid.UUID) *mensagemModel.MensagemModel {
	return &mensagemModel.MensagemModel{
		MensagemEscolaID:    escolaID,
		MensagemProfessorID: professorID,
		MensagemAlunoID:     r.MensagemAlunoID,
		MensagemTurmaID:     r.MensagemTurmaID,
		MensagemTitulo:      strings.TrimSpace(r.MensagemTitulo),
		MensagemCorpo:       strings.TrimSpace(r.MensagemCorpo),
	}
}

type UpdateMensagemRequest struct {
	MensagemTitulo *string `json:"mensagem_titulo" validate:"omitempty,min=1,max=160"`
	MensagemCorpo  *string `json:"mensagem_corpo" validate:"omitempty"`
}

func (r *UpdateMensagemRequest) ApplyToModel(m *mensagemModel.MensagemModel) {
	if r.MensagemTitulo != nil {
		m.MensagemTitulo = strings.TrimSpace(*r.MensagemTitulo)
	}
	if r.MensagemCorpo != nil {
		m.MensagemCorpo = strings.TrimSpace(*r.MensagemCorpo)
	}
}
