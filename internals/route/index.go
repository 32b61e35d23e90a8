// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	middleware "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
	routeDetails "schoolku_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// PRIVATE (USER) → wajib JWT
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ADMIN → JWT + role keuangan
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMiddleware.RequireRoles("admin", "staff", "bendahara"),
	)

	// WEBHOOK → tanpa JWT, rate limit khusus
	log.Println("[INFO] Setting up WEBHOOK group...")
	webhooks := app.Group("/webhooks",
		middleware.WebhookRateLimiter(),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceUserRoutes(user, db)
	routeDetails.FinanceAdminRoutes(admin, db)
	routeDetails.FinanceWebhookRoutes(webhooks, db)
}
