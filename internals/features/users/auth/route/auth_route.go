// internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "escolar_backend/internals/features/users/auth/controller"
	rateLimiter "escolar_backend/internals/middlewares"
	authMw "escolar_backend/internals/middlewares/auth"
)

// AuthRoutes registra /api/auth (superfície web).
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	base := app.Group("/api/auth")

	// públicas
	base.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	base.Post("/refresh", ctl.Refresh)

	// protegidas
	protected := base.Group("", authMw.AuthJWT(db))
	protected.Post("/logout", ctl.Logout)
	protected.Post("/change-password", ctl.ChangePassword)
	protected.Get("/me", ctl.Me)
}
