// file: internals/route/details/finance_routes.go
package details

import (
	FeesRoute "schoolku_backend/internals/features/finance/fees/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func FinanceUserRoutes(r fiber.Router, db *gorm.DB) {
	FeesRoute.FeesUserRoutes(r, db)
}

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	FeesRoute.FeesAdminRoutes(r, db)
}

func FinanceWebhookRoutes(r fiber.Router, db *gorm.DB) {
	FeesRoute.FeesWebhookRoutes(r, db)
}
