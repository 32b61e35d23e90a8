// file: internals/features/finance/fees/service/ledger_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/finance/fees/model"
)

func appendEntry(t *testing.T, svc *LedgerService, enrollmentID uuid.UUID, txType model.LedgerTransactionType, amount int64, date time.Time) *model.StudentLedgerEntry {
	t.Helper()
	entry, err := svc.Append(context.Background(), AppendEntryInput{
		EnrollmentID:    enrollmentID,
		Type:            txType,
		AmountCents:     amount,
		TransactionDate: date,
		CreatedBy:       uuid.New(),
	})
	require.NoError(t, err)
	return entry
}

func TestLedgerAppendBuildsRunningBalance(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &LedgerService{DB: db}

	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	// fee +1000, payment −400, discount −100 → balance 1000, 600, 500
	fee := appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxFee, 100000, day)
	payment := appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxPayment, 40000, day.AddDate(0, 0, 1))
	discount := appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxDiscount, 10000, day.AddDate(0, 0, 2))

	assert.Equal(t, int64(100000), fee.StudentLedgerEntryBalanceAfterCents)
	assert.Equal(t, int64(60000), payment.StudentLedgerEntryBalanceAfterCents)
	assert.Equal(t, int64(50000), discount.StudentLedgerEntryBalanceAfterCents)

	// seq monoton per enrollment
	assert.Equal(t, int64(1), fee.StudentLedgerEntrySeq)
	assert.Equal(t, int64(2), payment.StudentLedgerEntrySeq)
	assert.Equal(t, int64(3), discount.StudentLedgerEntrySeq)

	entries, summary, err := svc.ListForEnrollment(context.Background(), enr.StudentEnrollmentID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(100000), summary.TotalFeesCents)
	assert.Equal(t, int64(40000), summary.TotalPaymentsCents)
	assert.Equal(t, int64(10000), summary.TotalDiscountsCents)
	assert.Equal(t, int64(50000), summary.CurrentBalanceCents)
}

func TestLedgerAppendValidations(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &LedgerService{DB: db}

	_, err := svc.Append(context.Background(), AppendEntryInput{
		EnrollmentID: enr.StudentEnrollmentID, Type: "bogus", AmountCents: 100,
		TransactionDate: time.Now(), CreatedBy: uuid.New(),
	})
	assert.True(t, IsValidation(err))

	_, err = svc.Append(context.Background(), AppendEntryInput{
		EnrollmentID: enr.StudentEnrollmentID, Type: model.LedgerTxFee, AmountCents: 0,
		TransactionDate: time.Now(), CreatedBy: uuid.New(),
	})
	assert.True(t, IsValidation(err))

	_, err = svc.Append(context.Background(), AppendEntryInput{
		EnrollmentID: uuid.New(), Type: model.LedgerTxFee, AmountCents: 100,
		TransactionDate: time.Now(), CreatedBy: uuid.New(),
	})
	assert.True(t, IsNotFound(err))
}

func TestLedgerDeleteRequiresReason(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &LedgerService{DB: db}

	entry := appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxFee, 100000,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Delete(context.Background(), entry.StudentLedgerEntryID, "", uuid.New())
	assert.True(t, IsValidation(err))

	_, err = svc.Delete(context.Background(), entry.StudentLedgerEntryID, "   ", uuid.New())
	assert.True(t, IsValidation(err), "alasan whitespace saja tetap ditolak")
}

func TestLedgerDeleteRecomputesChain(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &LedgerService{DB: db}

	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxFee, 100000, day)
	appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxPayment, 40000, day.AddDate(0, 0, 1))
	discount := appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxDiscount, 10000, day.AddDate(0, 0, 2))

	deleted, err := svc.Delete(context.Background(), discount.StudentLedgerEntryID,
		"salah input diskon", uuid.New())
	require.NoError(t, err)
	assert.True(t, deleted.StudentLedgerEntryDeleted)
	require.NotNil(t, deleted.StudentLedgerEntryDeletionReason)
	assert.Equal(t, "salah input diskon", *deleted.StudentLedgerEntryDeletionReason)
	assert.NotNil(t, deleted.StudentLedgerEntryDeletedAt)

	entries, summary, err := svc.ListForEnrollment(context.Background(), enr.StudentEnrollmentID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(100000), entries[0].StudentLedgerEntryBalanceAfterCents)
	assert.Equal(t, int64(60000), entries[1].StudentLedgerEntryBalanceAfterCents)
	assert.Equal(t, int64(60000), summary.CurrentBalanceCents)
	assert.Equal(t, int64(0), summary.TotalDiscountsCents, "entry terhapus keluar dari agregat")

	// hapus entry yang sudah terhapus → not found
	_, err = svc.Delete(context.Background(), discount.StudentLedgerEntryID, "dua kali", uuid.New())
	assert.True(t, IsNotFound(err))
}

func TestLedgerDeleteMiddleEntryShiftsFollowers(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &LedgerService{DB: db}

	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxFee, 100000, day)
	payment := appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxPayment, 40000, day.AddDate(0, 0, 1))
	appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxDiscount, 10000, day.AddDate(0, 0, 2))

	_, err := svc.Delete(context.Background(), payment.StudentLedgerEntryID,
		"pembayaran dibatalkan bank", uuid.New())
	require.NoError(t, err)

	entries, _, err := svc.ListForEnrollment(context.Background(), enr.StudentEnrollmentID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(100000), entries[0].StudentLedgerEntryBalanceAfterCents)
	assert.Equal(t, int64(90000), entries[1].StudentLedgerEntryBalanceAfterCents,
		"balance entry setelah yang dihapus harus dihitung ulang")
}

func TestLedgerBackdatedAppendRecomputes(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &LedgerService{DB: db}

	day10 := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	day5 := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxFee, 100000, day10)

	// payment backdated ke sebelum fee → rantai diurut ulang by tanggal
	backdated := appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxPayment, 40000, day5)
	assert.Equal(t, int64(-40000), backdated.StudentLedgerEntryBalanceAfterCents,
		"entry backdated jadi awal rantai, balance dari nol")

	entries, summary, err := svc.ListForEnrollment(context.Background(), enr.StudentEnrollmentID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.LedgerTxPayment, entries[0].StudentLedgerEntryType)
	assert.Equal(t, int64(-40000), entries[0].StudentLedgerEntryBalanceAfterCents)
	assert.Equal(t, model.LedgerTxFee, entries[1].StudentLedgerEntryType)
	assert.Equal(t, int64(60000), entries[1].StudentLedgerEntryBalanceAfterCents)
	assert.Equal(t, int64(60000), summary.CurrentBalanceCents)
}

func TestLedgerSameDateOrderedBySeq(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	svc := &LedgerService{DB: db}

	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxFee, 100000, day)
	appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxPayment, 100000, day)
	appendEntry(t, svc, enr.StudentEnrollmentID, model.LedgerTxFee, 50000, day)

	entries, summary, err := svc.ListForEnrollment(context.Background(), enr.StudentEnrollmentID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// tanggal sama → urutan insert (seq) menentukan
	assert.Equal(t, int64(100000), entries[0].StudentLedgerEntryBalanceAfterCents)
	assert.Equal(t, int64(0), entries[1].StudentLedgerEntryBalanceAfterCents)
	assert.Equal(t, int64(50000), entries[2].StudentLedgerEntryBalanceAfterCents)
	assert.Equal(t, int64(50000), summary.CurrentBalanceCents)
}
