// internals/features/school/escolas/dto/escola_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	escolaModel "escolar_backend/internals/features/school/escolas/model"
)

/* ===================== REQUESTS ===================== */

type CreateEscolaRequest struct {
	EscolaNome string `json:"escola_nome" validate:"required,min=3,max=160"`
	EscolaSlug string `json:"escola_slug" validate:"required,min=2,max=80"`
}

func (r CreateEscolaRequest) ToModel() *escolaModel.EscolaModel {
	return &escolaModel.EscolaModel{
		EscolaNome:     strings.TrimSpace(r.EscolaNome),
		EscolaSlug:     strings.ToLower(strings.TrimSpace(r.EscolaSlug)),
		EscolaIsActive: true,
	}
}

type UpdateEscolaRequest struct {
	EscolaNome     *string `json:"escola_nome" validate:"omitempty,min=3,max=160"`
	EscolaSlug     *string `json:"escola_slug" validate:"omitempty,min=2,max=80"`
	EscolaIsActive *bool   `json:"escola_is_active" validate:"omitempty"`
}

func (r *UpdateEscolaRequest) ApplyToModel(m *escolaModel.EscolaModel) {
	if r.EscolaNome != nil {
		m.EscolaNome = strings.TrimSpace(*r.EscolaNome)
	}
	if r.EscolaSlug != nil {
		m.EscolaSlug = strings.ToLower(strings.TrimSpace(*r.EscolaSlug))
	}
	if r.EscolaIsActive != nil {
		m.EscolaIsActive = *r.EscolaIsActive
	}
}

// Vincula um usuário como admin da escola.
type AddEscolaUsuarioRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}
