// file: internals/features/finance/fees/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feesctl "schoolku_backend/internals/features/finance/fees/controller"
	"schoolku_backend/internals/features/finance/fees/service"
)

/*
User routes (read-only + checkout) — group diproteksi AuthJWT.
*/
func FeesUserRoutes(user fiber.Router, db *gorm.DB) {
	scheduleSvc := &service.ScheduleService{DB: db}
	paymentSvc := &service.PaymentService{DB: db}
	ledgerSvc := &service.LedgerService{DB: db}
	dueSoonSvc := &service.DueSoonService{DB: db}
	checkoutSvc := &service.CheckoutService{DB: db, Payments: paymentSvc}

	installment := &feesctl.FeeInstallmentHandler{DB: db, Schedule: scheduleSvc}
	payment := &feesctl.StudentFeePaymentHandler{DB: db, Payments: paymentSvc}
	ledger := &feesctl.StudentLedgerHandler{DB: db, Ledger: ledgerSvc}
	dueSoon := &feesctl.DueSoonHandler{DueSoon: dueSoonSvc, Dispatcher: service.LogReminderDispatcher{}}
	checkout := &feesctl.CheckoutHandler{Checkout: checkoutSvc}

	// NB: "/fee-installments/due-soon" harus terdaftar SEBELUM
	// "/fee-installments/:id" supaya tidak ketangkap param.
	user.Get("/fee-installments/due-soon", dueSoon.List)
	user.Get("/fee-installments", installment.List)
	user.Get("/fee-installments/:id", installment.GetByID)

	user.Get("/student-fee-payments", payment.List)

	user.Get("/student-ledgers/enrollment/:id", ledger.GetForEnrollment)

	user.Post("/fee-installments/:id/checkout", checkout.CreateSnapToken)
}
