// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	avisoRoute "escolar_backend/internals/features/school/announcements/route"
	atividadeRoute "escolar_backend/internals/features/school/activities/route"
	turmaRoute "escolar_backend/internals/features/school/classes/route"
	disciplinaRoute "escolar_backend/internals/features/school/disciplines/route"
	escolaRoute "escolar_backend/internals/features/school/escolas/route"
	notaRoute "escolar_backend/internals/features/school/grades/route"
	mensagemRoute "escolar_backend/internals/features/school/messages/route"
	alunoRoute "escolar_backend/internals/features/school/students/route"
	tgRoute "escolar_backend/internals/features/school/teachers_guardians/route"
	authRoute "escolar_backend/internals/features/users/auth/route"
	userRoute "escolar_backend/internals/features/users/user/route"
	authMw "escolar_backend/internals/middlewares/auth"
	featuresMw "escolar_backend/internals/middlewares/features"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Registrando BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Registrando AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== MOBILE =====================
	// login público; recursos atrás de token opaco + escopo de escola
	log.Println("[INFO] Registrando grupo MOBILE...")
	mobile := app.Group("/api/mobile")
	authRoute.MobileAuthRoutes(mobile, db)

	mobileScoped := mobile.Group("",
		authMw.MobileAuth(db),
		featuresMw.UseEscolaScope(db),
		featuresMw.IsMobileRole(),
	)
	atividadeRoute.ActivitiesMobileRoutes(mobileScoped, db)
	mensagemRoute.MessagesMobileRoutes(mobileScoped, db)
	notaRoute.GradesMobileRoutes(mobileScoped, db)
	avisoRoute.AnnouncementsMobileRoutes(mobileScoped, db)

	// ===================== OWNER (GLOBAL) =====================
	// admin geral gerencia tenants e usuários sem escola ativa
	log.Println("[INFO] Registrando grupo OWNER (/api/o)...")
	owner := app.Group("/api/o",
		authMw.AuthJWT(db),
		featuresMw.IsAdminGeralGlobal(db),
	)
	userRoute.UserAdminRoutes(owner, db)
	escolaRoute.EscolaAdminRoutes(owner, db)

	// ===================== ADMIN (por escola) =====================
	log.Println("[INFO] Registrando grupo ADMIN (/api/a)...")
	admin := app.Group("/api/a",
		authMw.AuthJWT(db),
		featuresMw.UseEscolaScope(db),
		featuresMw.IsEscolaStaff(),
	)
	turmaRoute.TurmaAdminRoutes(admin, db)
	disciplinaRoute.DisciplinaAdminRoutes(admin, db)
	tgRoute.TeachersGuardiansAdminRoutes(admin, db)
	alunoRoute.StudentsAdminRoutes(admin, db)
	avisoRoute.AnnouncementsAdminRoutes(admin, db)

	// ===================== PRIVATE (USER, escopado) =====================
	log.Println("[INFO] Registrando grupo USER (/api/u)...")
	private := app.Group("/api/u",
		authMw.AuthJWT(db),
		featuresMw.UseEscolaScope(db),
	)
	turmaRoute.TurmaUserRoutes(private, db)
	disciplinaRoute.DisciplinaUserRoutes(private, db)
	alunoRoute.StudentsUserRoutes(private, db)
	atividadeRoute.ActivitiesUserRoutes(private, db)
	mensagemRoute.MessagesUserRoutes(private, db)
	notaRoute.GradesUserRoutes(private, db)
	avisoRoute.AnnouncementsUserRoutes(private, db)
}
