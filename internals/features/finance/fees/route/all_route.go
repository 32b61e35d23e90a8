// file: internals/features/finance/fees/route/all_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feesctl "schoolku_backend/internals/features/finance/fees/controller"
	"schoolku_backend/internals/features/finance/fees/service"
)

/*
Public routes (tanpa JWT) — hanya webhook gateway, rate-limited di
route index.
*/
func FeesWebhookRoutes(public fiber.Router, db *gorm.DB) {
	paymentSvc := &service.PaymentService{DB: db}
	checkoutSvc := &service.CheckoutService{DB: db, Payments: paymentSvc}
	checkout := &feesctl.CheckoutHandler{Checkout: checkoutSvc}

	public.Post("/midtrans", checkout.Webhook)
}
