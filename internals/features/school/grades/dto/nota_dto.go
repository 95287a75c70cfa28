// internals/features/school/grades/dto/nota_dto.go
package dto

import (
	"github.com/google/uuid"

	notaModel "escolar_backend/internals/features/school/grades/model"
)

type CreateNotaRequest struct {
	NotaAlunoID      uuid.UUID `json:"nota_aluno_id" validate:"required"`
	NotaDisciplinaID uuid.UUID `json:"nota_disciplina_id" validate:"required"`
	NotaValor        float64   `json:"nota_valor" validate:"min=0,max=10"`
	NotaBimestre     int       `json:"nota_bimestre" validate:"required,min=1,max=4"`
}

func (r CreateNotaRequest) ToModel(escolaID, professorID uuid.UUID) *notaModel.NotaModel {
	return &notaModel.NotaModel{
		NotaEscolaID:     escolaID,
		NotaProfessorID:  professorID,
		NotaAlunoID:      r.NotaAlunoID,
		NotaDisciplinaID: r.NotaDisciplinaID,
		NotaValor:        r.NotaValor,
		NotaBimestre:     r.NotaBimestre,
	}
}

type UpdateNotaRequest struct {
	NotaValor    *float64 `json:"nota_valor" validate:"omitempty,min=0,max=10"`
	NotaBimestre *int     `json:"nota_bimestre" validate:"omitempty,min=1,max=4"`
}

func (r *UpdateNotaRequest) ApplyToModel(m *notaModel.NotaModel) {
	if r.NotaValor != nil {
		m.NotaValor = *r.NotaValor
	}
	if r.NotaBimestre != nil {
		m.NotaBimestre = *r.NotaBimestre
	}
}
