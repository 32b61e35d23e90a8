// file: internals/features/finance/fees/service/status.go
package service

import (
	"time"

	"schoolku_backend/internals/features/finance/fees/model"
)

// DeriveStatus menghitung status installment dari nominal + tanggal.
// Pure function, dipanggil di setiap read dan setelah setiap mutasi —
// status TIDAK pernah disimpan supaya tidak ada staleness.
//
//	paid    : amount_paid ≥ amount_due
//	overdue : amount_paid < amount_due && due_date < today
//	partial : 0 < amount_paid < amount_due && due_date ≥ today
//	pending : amount_paid == 0 && due_date ≥ today
//
// Perbandingan tanggal pada granularitas hari (jam diabaikan).
func DeriveStatus(amountDueCents, amountPaidCents int64, dueDate, today time.Time) model.FeeInstallmentStatus {
	if amountPaidCents >= amountDueCents {
		return model.FeeInstallmentStatusPaid
	}
	if dateOnly(dueDate).Before(dateOnly(today)) {
		return model.FeeInstallmentStatusOverdue
	}
	if amountPaidCents > 0 {
		return model.FeeInstallmentStatusPartial
	}
	return model.FeeInstallmentStatusPending
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
