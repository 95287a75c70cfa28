// internals/features/school/disciplines/route/disciplina_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	disciplinaController "escolar_backend/internals/features/school/disciplines/controller"
)

// DisciplinaAdminRoutes — mutações, grupo staff (/api/a).
func DisciplinaAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := disciplinaController.NewDisciplinaController(db)

	grp := r.Group("/disciplinas")
	grp.Get("/", ctl.List)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}

// DisciplinaUserRoutes — leitura escopada (/api/u).
func DisciplinaUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := disciplinaController.NewDisciplinaController(db)

	grp := r.Group("/disciplinas")
	grp.Get("/", ctl.List)
}
