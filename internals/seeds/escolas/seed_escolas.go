package escolas

import (
	"encoding/json"
	"log"
	"os"

	escolaModel "escolar_backend/internals/features/school/escolas/model"

	"gorm.io/gorm"
)

type EscolaSeed struct {
	Nome string `json:"nome"`
	Slug string `json:"slug"`
}

func SeedEscolasFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Lendo arquivo de escolas:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Falha ao ler arquivo JSON: %v", err)
	}

	var inputs []EscolaSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Falha ao decodificar JSON: %v", err)
	}

	for _, data := range inputs {
		var existing escolaModel.EscolaModel
		if err := db.Where("escola_slug = ?", data.Slug).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Escola com slug '%s' já existe, pulando.", data.Slug)
			continue
		}

		nova := escolaModel.EscolaModel{
			EscolaNome: data.Nome,
			EscolaSlug: data.Slug,
		}
		if err := db.Create(&nova).Error; err != nil {
			log.Printf("❌ Falha ao criar escola '%s': %v", data.Nome, err)
			continue
		}
		log.Printf("✅ Escola '%s' criada.", data.Nome)
	}
}
