// internals/features/school/teachers_guardians/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tgController "escolar_backend/internals/features/school/teachers_guardians/controller"
)

// TeachersGuardiansAdminRoutes — gestão de professores e responsáveis,
// grupo staff (/api/a).
func TeachersGuardiansAdminRoutes(r fiber.Router, db *gorm.DB) {
	prof := tgController.NewProfessorController(db)
	resp := tgController.NewResponsavelController(db)

	grpProf := r.Group("/professores")
	grpProf.Get("/", prof.List)
	grpProf.Post("/", prof.Create)
	grpProf.Delete("/:id", prof.Delete)
	grpProf.Post("/:id/turmas", prof.VincularTurma)
	grpProf.Delete("/:id/turmas/:turmaId", prof.DesvincularTurma)
	grpProf.Post("/:id/disciplinas", prof.VincularDisciplina)
	grpProf.Delete("/:id/disciplinas/:disciplinaId", prof.DesvincularDisciplina)

	grpResp := r.Group("/responsaveis")
	grpResp.Get("/", resp.List)
	grpResp.Post("/", resp.Create)
	grpResp.Delete("/:id", resp.Delete)
	grpResp.Post("/:id/alunos", resp.VincularAluno)
	grpResp.Delete("/:id/alunos/:alunoId", resp.DesvincularAluno)
}
