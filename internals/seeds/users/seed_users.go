package users

import (
	"encoding/json"
	"log"
	"os"

	userModel "escolar_backend/internals/features/users/user/model"
	helper "escolar_backend/internals/helpers"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserSeed struct {
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	CPF          string `json:"cpf"`
	Senha        string `json:"senha"`
	IsAdminGeral bool   `json:"is_admin_geral"`
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Lendo arquivo de usuários:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Falha ao ler arquivo JSON: %v", err)
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Falha ao decodificar JSON: %v", err)
	}

	for _, data := range inputs {
		cpf := helper.CanonicalCPF(data.CPF)
		if !helper.ValidCPF(cpf) {
			log.Printf("❌ CPF inválido para '%s', pulando.", data.Email)
			continue
		}

		var existing userModel.UserModel
		if err := db.Where("user_cpf = ?", cpf).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Usuário com CPF '%s' já existe, pulando.", cpf)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(data.Senha), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Falha ao gerar hash para '%s': %v", data.Email, err)
			continue
		}

		novo := userModel.UserModel{
			UserNome:         data.Nome,
			UserEmail:        data.Email,
			UserCPF:          cpf,
			UserSenha:        string(hash),
			UserIsAdminGeral: data.IsAdminGeral,
			UserIsActive:     true,
		}
		if err := db.Create(&novo).Error; err != nil {
			log.Printf("❌ Falha ao criar usuário '%s': %v", data.Email, err)
			continue
		}
		log.Printf("✅ Usuário '%s' criado.", data.Email)
	}
}
