// file: internals/features/finance/fees/service/status_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/features/finance/fees/model"
)

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	cases := []struct {
		name    string
		due     int64
		paid    int64
		dueDate time.Time
		want    model.FeeInstallmentStatus
	}{
		{"unpaid before due date", 50000, 0, tomorrow, model.FeeInstallmentStatusPending},
		{"partially paid before due date", 50000, 20000, tomorrow, model.FeeInstallmentStatusPartial},
		{"fully paid", 50000, 50000, tomorrow, model.FeeInstallmentStatusPaid},
		{"unpaid past due date", 50000, 0, yesterday, model.FeeInstallmentStatusOverdue},
		{"partially paid past due date", 50000, 20000, yesterday, model.FeeInstallmentStatusOverdue},
		// lunas menang atas overdue — telat bayar tapi lunas tetap paid
		{"fully paid past due date", 50000, 50000, yesterday, model.FeeInstallmentStatusPaid},
		// granularitas HARI: jatuh tempo hari ini belum overdue
		{"unpaid due today (morning)", 50000, 0, today.Add(-9 * time.Hour), model.FeeInstallmentStatusPending},
		{"partial due today", 50000, 10000, today, model.FeeInstallmentStatusPartial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(tc.due, tc.paid, tc.dueDate, today)
			assert.Equal(t, tc.want, got)
		})
	}
}
