// internals/features/users/user/dto/user_dto.go
package dto

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	userModel "escolar_backend/internals/features/users/user/model"
	helper "escolar_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type CreateUserRequest struct {
	UserNome     string  `json:"user_nome" validate:"required,min=3,max=120"`
	UserEmail    string  `json:"user_email" validate:"required,email"`
	UserCPF      string  `json:"user_cpf" validate:"required"`
	UserSenha    string  `json:"user_senha" validate:"required,min=8"`
	UserTelefone *string `json:"user_telefone" validate:"omitempty,max=20"`
	UserIsActive *bool   `json:"user_is_active" validate:"omitempty"`
}

func (r CreateUserRequest) ToModel() (*userModel.UserModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(r.UserSenha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	m := &userModel.UserModel{
		UserNome:     strings.TrimSpace(r.UserNome),
		UserEmail:    strings.ToLower(strings.TrimSpace(r.UserEmail)),
		UserCPF:      helper.CanonicalCPF(r.UserCPF),
		UserSenha:    string(hash),
		UserTelefone: r.UserTelefone,
		UserIsActive: true,
	}
	if r.UserIsActive != nil {
		m.UserIsActive = *r.UserIsActive
	}
	return m, nil
}

// Update parcial: aplica apenas o que veio no corpo.
type UpdateUserRequest struct {
	UserNome     *string `json:"user_nome" validate:"omitempty,min=3,max=120"`
	UserEmail    *string `json:"user_email" validate:"omitempty,email"`
	UserTelefone *string `json:"user_telefone" validate:"omitempty,max=20"`
	UserIsActive *bool   `json:"user_is_active" validate:"omitempty"`
}

func (r *UpdateUserRequest) ApplyToModel(m *userModel.UserModel) {
	if r.UserNome != nil {
		m.UserNome = strings.TrimSpace(*r.UserNome)
	}
	if r.UserEmail != nil {
		m.UserEmail = strings.ToLower(strings.TrimSpace(*r.UserEmail))
	}
	if r.UserTelefone != nil {
		m.UserTelefone = r.UserTelefone
	}
	if r.UserIsActive != nil {
		m.UserIsActive = *r.UserIsActive
	}
}
