// internals/features/school/teachers_guardians/dto/responsavel_dto.go
package dto

import (
	"github.com/google/uuid"
)

type CreateResponsavelRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type VincularAlunoRequest struct {
	AlunoID   uuid.UUID `json:"aluno_id" validate:"required"`
	Principal bool      `json:"principal"`
}
