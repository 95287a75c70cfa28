// internals/features/school/teachers_guardians/dto/professor_dto.go
package dto

import (
	"github.com/google/uuid"
)

type CreateProfessorRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type VincularTurmaRequest struct {
	TurmaID uuid.UUID `json:"turma_id" validate:"required"`
}

type VincularDisciplinaRequest struct {
	DisciplinaID uuid.UUID `json:"disciplina_id" validate:"required"`
}
