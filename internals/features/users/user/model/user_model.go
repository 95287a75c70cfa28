package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "escolar_backend/internals/databases"
)

// UserModel é o principal (identidade autenticada, independente de papel).
// O CPF é guardado na forma canônica (somente dígitos).
type UserModel struct {
	UserID   uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserNome string    `gorm:"column:user_nome;size:120;not null" json:"user_nome" validate:"required,min=3,max=120"`

	UserEmail string `gorm:"column:user_email;size:255;unique;not null" json:"user_email" validate:"required,email"`
	UserCPF   string `gorm:"column:user_cpf;size:11;uniqueIndex;not null" json:"user_cpf" validate:"required,len=11"`
	UserSenha string `gorm:"column:user_senha;not null" json:"-"`

	UserTelefone  *string `gorm:"column:user_telefone;size:20" json:"user_telefone,omitempty"`
	UserAvatarURL *string `gorm:"column:user_avatar_url;type:text" json:"user_avatar_url,omitempty"`

	// admin_geral ignora o escopo por escola
	UserIsAdminGeral bool `gorm:"column:user_is_admin_geral;not null;default:false" json:"user_is_admin_geral"`
	UserIsActive     bool `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserLastLoginAt *time.Time `gorm:"column:user_last_login_at" json:"user_last_login_at,omitempty"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return database.Table("users") }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
