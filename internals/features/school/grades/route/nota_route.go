// internals/features/school/grades/route/nota_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notaController "escolar_backend/internals/features/school/grades/controller"
)

// GradesUserRoutes — notas no grupo escopado (/api/u).
func GradesUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := notaController.NewNotaController(db)

	grp := r.Group("/notas")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}

// GradesMobileRoutes — boletim paginado no app.
func GradesMobileRoutes(r fiber.Router, db *gorm.DB) {
	ctl := notaController.NewNotaController(db)

	r.Get("/notas", ctl.ListMobile)
}
