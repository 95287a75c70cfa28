package seeds

import (
	escolas "escolar_backend/internals/seeds/escolas"
	users "escolar_backend/internals/seeds/users"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	escolas.SeedEscolasFromJSON(db, "internals/seeds/escolas/data_escolas.json")
}
