// file: internals/features/finance/fees/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feesctl "schoolku_backend/internals/features/finance/fees/controller"
	"schoolku_backend/internals/features/finance/fees/service"
)

/*
Admin routes (mutasi keuangan) — group sudah diproteksi AuthJWT +
RequireRoles("admin", "staff", "bendahara") di route index.
*/
func FeesAdminRoutes(admin fiber.Router, db *gorm.DB) {
	scheduleSvc := &service.ScheduleService{DB: db}
	paymentSvc := &service.PaymentService{DB: db}
	ledgerSvc := &service.LedgerService{DB: db}
	dueSoonSvc := &service.DueSoonService{DB: db}

	installment := &feesctl.FeeInstallmentHandler{DB: db, Schedule: scheduleSvc}
	payment := &feesctl.StudentFeePaymentHandler{DB: db, Payments: paymentSvc}
	ledger := &feesctl.StudentLedgerHandler{DB: db, Ledger: ledgerSvc}
	dueSoon := &feesctl.DueSoonHandler{DueSoon: dueSoonSvc, Dispatcher: service.LogReminderDispatcher{}}

	// =========================
	// Installment schedule
	// =========================
	admin.Post("/enrollments/:id/generate-installments", installment.GenerateInstallments)

	// =========================
	// Fee installments (CUD)
	// =========================
	admin.Post("/fee-installments", installment.Create)
	admin.Put("/fee-installments/:id", installment.Update)
	admin.Delete("/fee-installments/:id", installment.Delete)

	// =========================
	// Reminder hand-off
	// =========================
	admin.Post("/fee-installments/due-soon/remind", dueSoon.Remind)

	// =========================
	// Payments (CUD)
	// =========================
	admin.Post("/student-fee-payments", payment.Create)
	admin.Put("/student-fee-payments/:id", payment.Update)
	admin.Delete("/student-fee-payments/:id", payment.Delete)

	// =========================
	// Ledger (append + reasoned delete)
	// =========================
	admin.Post("/student-ledgers/enrollment/:id", ledger.AppendEntry)
	admin.Delete("/ledger-entries/:id", ledger.DeleteEntry)
}
