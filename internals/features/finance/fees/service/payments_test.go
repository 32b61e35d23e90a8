// file: internals/features/finance/fees/service/payments_test.go
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

func TestRecordPaymentUpdatesAggregate(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	inst := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, time.Now().AddDate(0, 1, 0))
	svc := &PaymentService{DB: db}

	// 500 → bayar 200, 200, 100 = lunas; 50 berikutnya overpayment
	for _, amount := range []int64{20000, 20000, 10000} {
		_, got, err := svc.Record(context.Background(), RecordPaymentInput{
			InstallmentID: inst.FeeInstallmentID,
			AmountCents:   amount,
			Date:          time.Now(),
		})
		require.NoError(t, err)
		inst = *got
	}
	assert.Equal(t, int64(50000), inst.FeeInstallmentAmountPaidCents)
	assert.Equal(t, int64(0), inst.RemainingCents())

	_, _, err := svc.Record(context.Background(), RecordPaymentInput{
		InstallmentID: inst.FeeInstallmentID,
		AmountCents:   5000,
		Date:          time.Now(),
	})
	assert.True(t, IsConflict(err), "pembayaran melebihi sisa harus ditolak")
}

func TestRecordPaymentValidations(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	inst := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, time.Now().AddDate(0, 1, 0))
	svc := &PaymentService{DB: db}

	_, _, err := svc.Record(context.Background(), RecordPaymentInput{
		InstallmentID: inst.FeeInstallmentID, AmountCents: 0, Date: time.Now(),
	})
	assert.True(t, IsValidation(err))

	_, _, err = svc.Record(context.Background(), RecordPaymentInput{
		InstallmentID: inst.FeeInstallmentID, AmountCents: -100, Date: time.Now(),
	})
	assert.True(t, IsValidation(err))

	_, _, err = svc.Record(context.Background(), RecordPaymentInput{
		InstallmentID: uuid.New(), AmountCents: 100, Date: time.Now(),
	})
	assert.True(t, IsNotFound(err))
}

func TestRecordPaymentDuplicateOrderID(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	inst := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, time.Now().AddDate(0, 1, 0))
	svc := &PaymentService{DB: db}

	orderID := "FEE-" + inst.FeeInstallmentID.String() + "-1756700000"
	_, _, err := svc.Record(context.Background(), RecordPaymentInput{
		InstallmentID: inst.FeeInstallmentID,
		AmountCents:   10000,
		Date:          time.Now(),
		OrderID:       &orderID,
	})
	require.NoError(t, err)

	// notifikasi webhook ganda → order id sama dua kali
	_, _, err = svc.Record(context.Background(), RecordPaymentInput{
		InstallmentID: inst.FeeInstallmentID,
		AmountCents:   10000,
		Date:          time.Now(),
		OrderID:       &orderID,
	})
	assert.True(t, IsConflict(err))
}

func TestUpdatePaymentReallocates(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	inst := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, time.Now().AddDate(0, 1, 0))
	svc := &PaymentService{DB: db}

	payment, _, err := svc.Record(context.Background(), RecordPaymentInput{
		InstallmentID: inst.FeeInstallmentID,
		AmountCents:   20000,
		Date:          time.Now(),
	})
	require.NoError(t, err)

	// 200 → 400: sisa dihitung tanpa payment yang diedit
	newAmount := int64(40000)
	_, got, err := svc.Update(context.Background(), payment.StudentFeePaymentID, UpdatePaymentInput{
		AmountCents: &newAmount,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40000), got.FeeInstallmentAmountPaidCents)

	// 400 → 600 melebihi due 500
	tooMuch := int64(60000)
	_, _, err = svc.Update(context.Background(), payment.StudentFeePaymentID, UpdatePaymentInput{
		AmountCents: &tooMuch,
	})
	assert.True(t, IsConflict(err))

	// agregat tidak berubah setelah update gagal
	var fresh model.FeeInstallment
	require.NoError(t, db.First(&fresh, "fee_installment_id = ?", inst.FeeInstallmentID).Error)
	assert.Equal(t, int64(40000), fresh.FeeInstallmentAmountPaidCents)
}

func TestDeletePaymentRestoresRemaining(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	inst := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, time.Now().AddDate(0, 1, 0))
	svc := &PaymentService{DB: db}

	payment, _, err := svc.Record(context.Background(), RecordPaymentInput{
		InstallmentID: inst.FeeInstallmentID,
		AmountCents:   30000,
		Date:          time.Now(),
	})
	require.NoError(t, err)

	got, err := svc.Delete(context.Background(), payment.StudentFeePaymentID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.FeeInstallmentAmountPaidCents)
	assert.Equal(t, int64(50000), got.RemainingCents())

	// payment soft-deleted: hilang dari query default, masih ada Unscoped
	var live int64
	require.NoError(t, db.Model(&model.StudentFeePayment{}).
		Where("student_fee_payment_installment_id = ?", inst.FeeInstallmentID).
		Count(&live).Error)
	assert.Equal(t, int64(0), live)

	var all int64
	require.NoError(t, db.Unscoped().Model(&model.StudentFeePayment{}).
		Where("student_fee_payment_installment_id = ?", inst.FeeInstallmentID).
		Count(&all).Error)
	assert.Equal(t, int64(1), all)

	// sisa pulih → bisa dibayar lagi penuh
	_, fresh, err := svc.Record(context.Background(), RecordPaymentInput{
		InstallmentID: inst.FeeInstallmentID,
		AmountCents:   50000,
		Date:          time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), fresh.RemainingCents())
}
