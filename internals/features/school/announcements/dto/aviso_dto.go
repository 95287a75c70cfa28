// internals/features/school/announcements/dto/aviso_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	avisoModel "escolar_backend/internals/features/school/announcements/model"
)

type CreateAvisoRequest struct {
	AvisoTitulo     string     `json:"aviso_titulo" validate:"required,min=1,max=160"`
	AvisoCorpo      string     `json:"aviso_corpo" validate:"required"`
	AvisoPapeisAlvo []string   `json:"aviso_papeis_alvo" validate:"omitempty,dive,oneof=professor responsavel"`
	AvisoTurmaID    *uuid.UUID `json:"aviso_turma_id" validate:"omitempty"`
}

func (r CreateAvisoRequest) ToModel(escolaID, userID uuid.UUID) *avisoModel.AvisoModel {
	return &avisoModel.AvisoModel{
		AvisoEscolaID:   escolaID,
		AvisoUserID:     userID,
		AvisoTitulo:     strings.TrimSpace(r.AvisoTitulo),
		AvisoCorpo:      strings.TrimSpace(r.AvisoCorpo),
		AvisoPapeisAlvo: pq.StringArray(r.AvisoPapeisAlvo),
		AvisoTurmaID:    r.AvisoTurmaID,
	}
}

type UpdateAvisoRequest struct {
	AvisoTitulo     *string   `json:"aviso_titulo" validate:"omitempty,min=1,max=160"`
	AvisoCorpo      *string   `json:"aviso_corpo" validate:"omitempty"`
	AvisoPapeisAlvo *[]string `json:"aviso_papeis_alvo" validate:"omitempty,dive,oneof=professor responsavel"`
}

func (r *UpdateAvisoRequest) ApplyToModel(m *avisoModel.AvisoModel) {
	if r.AvisoTitulo != nil {
		m.AvisoTitulo = strings.TrimSpace(*r.AvisoTitulo)
	}
	if r.AvisoCorpo != nil {
		m.AvisoCorpo = strings.TrimSpace(*r.AvisoCorpo)
	}
	if r.AvisoPapeisAlvo != nil {
		m.AvisoPapeisAlvo = pq.StringArray(*r.AvisoPapeisAlvo)
	}
}
