// internals/features/school/messages/route/mensagem_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	mensagemController "escolar_backend/internals/features/school/messages/controller"
)

// MessagesUserRoutes — grupo escopado (/api/u). A criação é de professor; a
// marcação de leitura é do responsável do aluno alvo.
func MessagesUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := mensagemController.NewMensagemController(db)

	grp := r.Group("/mensagens")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
	grp.Patch("/:id/lida", ctl.MarcarLida)
	grp.Post("/:id/anexos", ctl.UploadAnexo)
}

// MessagesMobileRoutes — lista paginada e marcação de leitura no app.
func MessagesMobileRoutes(r fiber.Router, db *gorm.DB) {
	ctl := mensagemController.NewMensagemController(db)

	r.Get("/mensagens", ctl.ListMobile)
	r.Get("/mensagens/:id", ctl.GetByID)
	r.Patch("/mensagens/:id/lida", ctl.MarcarLida)
}
