// internals/features/school/disciplines/dto/disciplina_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	disciplinaModel "escolar_backend/internals/features/school/disciplines/model"
)

type CreateDisciplinaRequest struct {
	DisciplinaNome string `json:"disciplina_nome" validate:"required,min=2,max=120"`
}

func (r CreateDisciplinaRequest) ToModel(escolaID uuid.UUID) *disciplinaModel.DisciplinaModel {
	return &disciplinaModel.DisciplinaModel{
		DisciplinaEscolaID: escolaID,
		DisciplinaNome:     strings.TrimSpace(r.DisciplinaNome),
		DisciplinaIsActive: true,
	}
}

type UpdateDisciplinaRequest struct {
	DisciplinaNome     *string `json:"disciplina_nome" validate:"omitempty,min=2,max=120"`
	DisciplinaIsActive *bool   `json:"disciplina_is_active" validate:"omitempty"`
}

func (r *UpdateDisciplinaRequest) ApplyToModel(m *disciplinaModel.DisciplinaModel) {
	if r.DisciplinaNome != nil {
		m.DisciplinaNome = strings.TrimSpace(*r.DisciplinaNome)
	}
	if r.DisciplinaIsActive != nil {
		m.DisciplinaIsActive = *r.DisciplinaIsActive
	}
}
