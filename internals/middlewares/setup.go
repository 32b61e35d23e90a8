package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar (urutan penting:
// recovery paling luar supaya panic di middleware lain ikut tertangkap).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
