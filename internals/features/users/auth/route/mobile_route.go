// internals/features/users/auth/route/mobile_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "escolar_backend/internals/features/users/auth/controller"
	rateLimiter "escolar_backend/internals/middlewares"
	authMw "escolar_backend/internals/middlewares/auth"
)

// MobileAuthRoutes registra o login/me/logout da API mobile sob /api/mobile.
func MobileAuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := authController.NewMobileAuthController(db)

	r.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)

	protected := r.Group("", authMw.MobileAuth(db))
	protected.Get("/me", ctl.Me)
	protected.Post("/logout", ctl.Logout)
}
