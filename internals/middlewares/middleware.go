// internals/middlewares/middleware.go
package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"

	loggermw "escolar_backend/internals/middlewares/logger"
)

// SetupMiddlewares registra a cadeia global de middlewares.
// A ordem importa: recovery primeiro, depois cors, logger e limiter.
func SetupMiddlewares(app *fiber.App) {
	log.Println("[INFO] Registrando middlewares globais...")

	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggermw.LoggerMiddleware())
	app.Use(GlobalRateLimiter())

	log.Println("✅ Middlewares globais registrados")
}
