// internals/features/users/auth/dto/auth_dto.go
package dto

/* ===================== WEB ===================== */

// Login aceita e-mail ou CPF no campo identificador.
type LoginRequest struct {
	Identificador string `json:"identificador" validate:"required,min=3"`
	Senha         string `json:"senha" validate:"required,min=6"`
	// dica opcional de escola ativa para usuários multi-escola
	EscolaID string `json:"escola_id,omitempty" validate:"omitempty,uuid"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	SenhaAtual string `json:"senha_atual" validate:"required"`
	SenhaNova  string `json:"senha_nova" validate:"required,min=8"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

/* ===================== MOBILE ===================== */

type MobileLoginRequest struct {
	CPF   string `json:"cpf" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

// MobileUser segue o shape consumido pelo app (type: teacher|responsavel).
type MobileUser struct {
	ID           string  `json:"id"`
	NomeCompleto string  `json:"nome_completo"`
	Email        string  `json:"email"`
	CPF          string  `json:"cpf"`
	Telefone     *string `json:"telefone"`
	AvatarURL    *string `json:"avatar_url"`
	Type         string  `json:"type"`
}

type MobileLoginResponse struct {
	Token string     `json:"token"`
	User  MobileUser `json:"user"`
}

// MobileEscola aparece no /me com as escolas vinculadas ao usuário.
type MobileEscola struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
	Slug string `json:"slug"`
}

type MobileMeResponse struct {
	User    MobileUser     `json:"user"`
	Escolas []MobileEscola `json:"escolas"`
}
