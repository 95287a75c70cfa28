// internals/features/school/classes/dto/turma_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	turmaModel "escolar_backend/internals/features/school/classes/model"
)

type CreateTurmaRequest struct {
	TurmaNome      string `json:"turma_nome" validate:"required,min=1,max=120"`
	TurmaAnoLetivo int    `json:"turma_ano_letivo" validate:"required,min=2000,max=2100"`
}

func (r CreateTurmaRequest) ToModel(escolaID uuid.UUID) *turmaModel.TurmaModel {
	return &turmaModel.TurmaModel{
		TurmaEscolaID:  escolaID,
		TurmaNome:      strings.TrimSpace(r.TurmaNome),
		TurmaAnoLetivo: r.TurmaAnoLetivo,
		TurmaIsActive:  true,
	}
}

type UpdateTurmaRequest struct {
	TurmaNome      *string `json:"turma_nome" validate:"omitempty,min=1,max=120"`
	TurmaAnoLetivo *int    `json:"turma_ano_letivo" validate:"omitempty,min=2000,max=2100"`
	TurmaIsActive  *bool   `json:"turma_is_active" validate:"omitempty"`
}

func (r *UpdateTurmaRequest) ApplyToModel(m *turmaModel.TurmaModel) {
	if r.TurmaNome != nil {
		m.TurmaNome = strings.TrimSpace(*r.TurmaNome)
	}
	if r.TurmaAnoLetivo != nil {
		m.TurmaAnoLetivo = *r.TurmaAnoLetivo
	}
	if r.TurmaIsActive != nil {
		m.TurmaIsActive = *r.TurmaIsActive
	}
}
