// file: internals/features/finance/fees/service/due_soon_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDueWithinWindow(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &DueSoonService{DB: db}

	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	inWindow := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, today.AddDate(0, 0, 3))
	partial := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 20000, today.AddDate(0, 0, 5))
	seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, today.AddDate(0, 0, 10))     // di luar window 7 hari
	seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, today.AddDate(0, 0, -1))     // overdue, bukan due-soon
	seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 50000, today.AddDate(0, 0, 2))  // lunas, tidak perlu reminder

	items, err := svc.FindDueWithin(context.Background(), 7, today)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// urut due date naik + konteks enrollment ikut
	assert.Equal(t, inWindow.FeeInstallmentID, items[0].Installment.FeeInstallmentID)
	assert.Equal(t, partial.FeeInstallmentID, items[1].Installment.FeeInstallmentID)
	assert.Equal(t, "Ahmad Fauzi", items[0].Enrollment.StudentEnrollmentStudentName)
	assert.Equal(t, "2025/2026", items[0].Enrollment.StudentEnrollmentAcademicYear)
}

func TestFindDueWithinZeroDaysMeansToday(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &DueSoonService{DB: db}

	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	dueToday := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, today.Add(5*time.Hour))
	seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, today.AddDate(0, 0, 1))

	items, err := svc.FindDueWithin(context.Background(), 0, today)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, dueToday.FeeInstallmentID, items[0].Installment.FeeInstallmentID)

	_, err = svc.FindDueWithin(context.Background(), -1, today)
	assert.True(t, IsValidation(err))
}

// dispatcher uji: gagal untuk installment tertentu
type flakyDispatcher struct {
	failTitle string
	calls     int
}

func (d *flakyDispatcher) DispatchInstallmentReminder(_ context.Context, item DueSoonItem) error {
	d.calls++
	if item.Installment.FeeInstallmentTitle == d.failTitle {
		return errors.New("gateway WA timeout")
	}
	return nil
}

func TestRemindContinuesPastFailures(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &DueSoonService{DB: db}

	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, today.AddDate(0, 0, 1))
	failing := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, today.AddDate(0, 0, 2))
	seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, today.AddDate(0, 0, 3))

	// bikin judul unik untuk target gagal
	require.NoError(t, db.Model(&failing).
		Update("fee_installment_title", "SPP Maret").Error)

	d := &flakyDispatcher{failTitle: "SPP Maret"}
	summary, err := svc.Remind(context.Background(), 7, today, d)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalCandidates)
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, failing.FeeInstallmentID, summary.Failures[0].FeeInstallmentID)
	assert.Contains(t, summary.Failures[0].Reason, "timeout")
	assert.Equal(t, 3, d.calls, "satu kegagalan tidak menghentikan sisanya")
}

func TestRemindNilDispatcherFallsBackToLog(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &DueSoonService{DB: db}

	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, today.AddDate(0, 0, 1))

	summary, err := svc.Remind(context.Background(), 7, today, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 0, summary.Failed)
}
