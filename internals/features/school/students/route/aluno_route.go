// internals/features/school/students/route/aluno_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alunoController "escolar_backend/internals/features/school/students/controller"
)

// StudentsAdminRoutes — aluno e matrícula, grupo staff (/api/a).
func StudentsAdminRoutes(r fiber.Router, db *gorm.DB) {
	aluno := alunoController.NewAlunoController(db)
	matricula := alunoController.NewMatriculaController(db)

	grpAluno := r.Group("/alunos")
	grpAluno.Get("/", aluno.List)
	grpAluno.Get("/:id", aluno.GetByID)
	grpAluno.Post("/", aluno.Create)
	grpAluno.Put("/:id", aluno.Update)
	grpAluno.Delete("/:id", aluno.Delete)
	grpAluno.Post("/:id/rematricula", matricula.Rematricular)

	grpMat := r.Group("/matriculas")
	grpMat.Get("/", matricula.List)
	grpMat.Post("/", matricula.Create)
	grpMat.Delete("/:id", matricula.Encerrar)
}

// StudentsUserRoutes — leitura escopada (/api/u).
func StudentsUserRoutes(r fiber.Router, db *gorm.DB) {
	aluno := alunoController.NewAlunoController(db)

	grp := r.Group("/alunos")
	grp.Get("/", aluno.List)
	grp.Get("/:id", aluno.GetByID)
}
