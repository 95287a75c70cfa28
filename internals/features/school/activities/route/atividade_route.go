// internals/features/school/activities/route/atividade_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	atividadeController "escolar_backend/internals/features/school/activities/controller"
)

// ActivitiesUserRoutes — provas e exercícios no grupo escopado (/api/u).
// Criação e mutação passam pelos gates de autoria dentro dos controllers.
func ActivitiesUserRoutes(r fiber.Router, db *gorm.DB) {
	provas := atividadeController.NewProvaController(db)
	exercicios := atividadeController.NewExercicioController(db)

	pg := r.Group("/provas")
	pg.Get("/", provas.List)
	pg.Get("/:id", provas.GetByID)
	pg.Post("/", provas.Create)
	pg.Put("/:id", provas.Update)
	pg.Delete("/:id", provas.Delete)
	pg.Post("/:id/anexo", provas.UploadAnexo)

	eg := r.Group("/exercicios")
	eg.Get("/", exercicios.List)
	eg.Get("/:id", exercicios.GetByID)
	eg.Post("/", exercicios.Create)
	eg.Put("/:id", exercicios.Update)
	eg.Delete("/:id", exercicios.Delete)
	eg.Post("/:id/anexo", exercicios.UploadAnexo)
}

// ActivitiesMobileRoutes — listas paginadas para o app (/api/mobile).
func ActivitiesMobileRoutes(r fiber.Router, db *gorm.DB) {
	provas := atividadeController.NewProvaController(db)
	exercicios := atividadeController.NewExercicioController(db)

	r.Get("/provas", provas.ListMobile)
	r.Get("/exercicios", exercicios.ListMobile)
}
