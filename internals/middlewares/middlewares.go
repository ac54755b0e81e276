// file: internals/middlewares/middlewares.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares registra los middlewares base de toda la app.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
