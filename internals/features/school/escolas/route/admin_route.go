// internals/features/school/escolas/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	escolaController "escolar_backend/internals/features/school/escolas/controller"
)

// EscolaAdminRoutes registra o CRUD de escolas sob o grupo admin-geral.
func EscolaAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := escolaController.NewEscolaController(db)

	grp := r.Group("/escolas")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)

	grp.Post("/:id/admins", ctl.AddAdmin)
	grp.Delete("/:id/admins/:userId", ctl.RemoveAdmin)
}
