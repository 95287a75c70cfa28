// internals/features/school/activities/dto/atividade_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	atividadeModel "escolar_backend/internals/features/school/activities/model"
)

/* ===================== provas ===================== */

// Create: escola e professor autores vêm do contexto, nunca do corpo.
type CreateProvaRequest struct {
	ProvaTurmaID      uuid.UUID  `json:"prova_turma_id" validate:"required"`
	ProvaDisciplinaID *uuid.UUID `json:"prova_disciplina_id" validate:"omitempty"`
	ProvaTitulo       string     `json:"prova_titulo" validate:"required,min=2,max=160"`
	ProvaDescricao    *string    `json:"prova_descricao" validate:"omitempty"`
	ProvaData         *string    `json:"prova_data" validate:"omitempty,datetime=2006-01-02"`
}

func (r CreateProvaRequest) ToModel(escolaID, professorID uuid.UUID) *atividadeModel.ProvaModel {
	m := &atividadeModel.ProvaModel{
		ProvaEscolaID:     escolaID,
		ProvaProfessorID:  professorID,
		ProvaTurmaID:      r.ProvaTurmaID,
		ProvaDisciplinaID: r.ProvaDisciplinaID,
		ProvaTitulo:       strings.TrimSpace(r.ProvaTitulo),
		ProvaDescricao:    r.ProvaDescricao,
	}
	if r.ProvaData != nil {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.ProvaData)); err == nil {
			m.ProvaData = &d
		}
	}
	return m
}

type UpdateProvaRequest struct {
	ProvaTurmaID      *uuid.UUID `json:"prova_turma_id" validate:"omitempty"`
	ProvaDisciplinaID *uuid.UUID `json:"prova_disciplina_id" validate:"omitempty"`
	ProvaTitulo       *string    `json:"prova_titulo" validate:"omitempty,min=2,max=160"`
	ProvaDescricao    *string    `json:"prova_descricao" validate:"omitempty"`
	ProvaData         *string    `json:"prova_data" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateProvaRequest) ApplyToModel(m *atividadeModel.ProvaModel) {
	if r.ProvaTurmaID != nil {
		m.ProvaTurmaID = *r.ProvaTurmaID
	}
	if r.ProvaDisciplinaID != nil {
		m.ProvaDisciplinaID = r.ProvaDisciplinaID
	}
	if r.ProvaTitulo != nil {
		m.ProvaTitulo = strings.TrimSpace(*r.ProvaTitulo)
	}
	if r.ProvaDescricao != nil {
		m.ProvaDescricao = r.ProvaDescricao
	}
	if r.ProvaData != nil {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.ProvaData)); err == nil {
			m.ProvaData = &d
		}
	}
}

/* ===================== exercícios ===================== */

type CreateExercicioRequest struct {
	ExercicioTurmaID      uuid.UUID  `json:"exercicio_turma_id" validate:"required"`
	ExercicioDisciplinaID *uuid.UUID `json:"exercicio_disciplina_id" validate:"omitempty"`
	ExercicioTitulo       string     `json:"exercicio_titulo" validate:"required,min=2,max=160"`
	ExercicioDescricao    *string    `json:"exercicio_descricao" validate:"omitempty"`
	ExercicioDataEntrega  *string    `json:"exercicio_data_entrega" validate:"omitempty,datetime=2006-01-02"`
}

func (r CreateExercicioRequest) ToModel(escolaID, professorID uuid.UUID) *atividadeModel.ExercicioModel {
	m := &atividadeModel.ExercicioModel{
		ExercicioEscolaID:     escolaID,
		ExercicioProfessorID:  professorID,
		ExercicioTurmaID:      r.ExercicioTurmaID,
		ExercicioDisciplinaID: r.ExercicioDisciplinaID,
		ExercicioTitulo:       strings.TrimSpace(r.ExercicioTitulo),
		ExercicioDescricao:    r.ExercicioDescricao,
	}
	if r.ExercicioDataEntrega != nil {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.ExercicioDataEntrega)); err == nil {
			m.ExercicioDataEntrega = &d
		}
	}
	return m
}

type UpdateExercicioRequest struct {
	ExercicioTurmaID      *uuid.UUID `json:"exercicio_turma_id" validate:"omitempty"`
	ExercicioDisciplinaID *uuid.UUID `json:"exercicio_disciplina_id" validate:"omitempty"`
	ExercicioTitulo       *string    `json:"exercicio_titulo" validate:"omitempty,min=2,max=160"`
	ExercicioDescricao    *string    `json:"exercicio_descricao" validate:"omitempty"`
	ExercicioDataEntrega  *string    `json:"exercicio_data_entrega" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateExercicioRequest) ApplyToModel(m *atividadeModel.ExercicioModel) {
	if r.ExercicioTurmaID != nil {
		m.ExercicioTurmaID = *r.ExercicioTurmaID
	}
	if r.ExercicioDisciplinaID != nil {
		m.ExercicioDisciplinaID = r.ExercicioDisciplinaID
	}
	if r.ExercicioTitulo != nil {
		m.ExercicioTitulo = strings.TrimSpace(*r.ExercicioTitulo)
	}
	if r.ExercicioDescricao != nil {
		m.ExercicioDescricao = r.ExercicioDescricao
	}
	if r.ExercicioDataEntrega != nil {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.ExercicioDataEntrega)); err == nil {
			m.ExercicioDataEntrega = &d
		}
	}
}
