// internals/features/school/announcements/route/aviso_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	avisoController "escolar_backend/internals/features/school/announcements/controller"
)

// AnnouncementsAdminRoutes — publicação e mutação de avisos, grupo staff (/api/a).
func AnnouncementsAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := avisoController.NewAvisoController(db)

	grp := r.Group("/avisos")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}

// AnnouncementsUserRoutes — leitura escopada por papel alvo (/api/u). Um
// professor também cria aviso de turma por aqui.
func AnnouncementsUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := avisoController.NewAvisoController(db)

	grp := r.Group("/avisos")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
}

// AnnouncementsMobileRoutes — mural paginado no app.
func AnnouncementsMobileRoutes(r fiber.Router, db *gorm.DB) {
	ctl := avisoController.NewAvisoController(db)

	r.Get("/avisos", ctl.ListMobile)
}
