// internals/features/school/students/dto/aluno_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	alunoModel "escolar_backend/internals/features/school/students/model"
)

type CreateAlunoRequest struct {
	AlunoNome           string  `json:"aluno_nome" validate:"required,min=3,max=120"`
	AlunoDataNascimento *string `json:"aluno_data_nascimento" validate:"omitempty,datetime=2006-01-02"`

	// opcional: vincula um responsável já cadastrado na mesma transação
	ResponsavelID *uuid.UUID `json:"responsavel_id" validate:"omitempty"`
	Principal     bool       `json:"principal"`
}

func (r CreateAlunoRequest) ToModel(escolaID uuid.UUID) *alunoModel.AlunoModel {
	m := &alunoModel.AlunoModel{
		AlunoEscolaID: escolaID,
		AlunoNome:     strings.TrimSpace(r.AlunoNome),
		AlunoIsActive: true,
	}
	if r.AlunoDataNascimento != nil {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.AlunoDataNascimento)); err == nil {
			m.AlunoDataNascimento = &d
		}
	}
	return m
}

type UpdateAlunoRequest struct {
	AlunoNome           *string `json:"aluno_nome" validate:"omitempty,min=3,max=120"`
	AlunoDataNascimento *string `json:"aluno_data_nascimento" validate:"omitempty,datetime=2006-01-02"`
	AlunoIsActive       *bool   `json:"aluno_is_active" validate:"omitempty"`
}

func (r *UpdateAlunoRequest) ApplyToModel(m *alunoModel.AlunoModel) {
	if r.AlunoNome != nil {
		m.AlunoNome = strings.TrimSpace(*r.AlunoNome)
	}
	if r.AlunoDataNascimento != nil {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.AlunoDataNascimento)); err == nil {
			m.AlunoDataNascimento = &d
		}
	}
	if r.AlunoIsActive != nil {
		m.AlunoIsActive = *r.AlunoIsActive
	}
}

/* ===================== matrículas ===================== */

type CreateMatriculaRequest struct {
	AlunoID uuid.UUID `json:"aluno_id" validate:"required"`
	TurmaID uuid.UUID `json:"turma_id" validate:"required"`
}

// Rematrícula: troca a turma ativa do aluno numa única transação.
type RematriculaRequest struct {
	TurmaID uuid.UUID `json:"turma_id" validate:"required"`
}
