// internals/features/school/classes/route/turma_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	turmaController "escolar_backend/internals/features/school/classes/controller"
)

// TurmaAdminRoutes — mutações de turma, grupo staff (/api/a).
func TurmaAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := turmaController.NewTurmaController(db)

	grp := r.Group("/turmas")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}

// TurmaUserRoutes — leitura escopada, grupo autenticado (/api/u).
func TurmaUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := turmaController.NewTurmaController(db)

	grp := r.Group("/turmas")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
}
