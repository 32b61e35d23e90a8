// file: internals/features/finance/fees/service/checkout_test.go
package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/finance/fees/model"
)

func TestInstallmentIDFromOrderID(t *testing.T) {
	id := uuid.New()

	got, err := installmentIDFromOrderID(fmt.Sprintf("FEE-%s-1756700000", id))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = installmentIDFromOrderID("INV-123")
	assert.Error(t, err)

	_, err = installmentIDFromOrderID("FEE-short")
	assert.Error(t, err)
}

func TestGrossAmountCents(t *testing.T) {
	got, err := grossAmountCents(map[string]any{"gross_amount": "150000.00"})
	require.NoError(t, err)
	assert.Equal(t, int64(15000000), got)

	got, err = grossAmountCents(map[string]any{"gross_amount": float64(500)})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), got)

	_, err = grossAmountCents(map[string]any{})
	assert.Error(t, err)

	_, err = grossAmountCents(map[string]any{"gross_amount": "abc"})
	assert.Error(t, err)
}

func TestHandleWebhookSettlementRecordsPayment(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	inst := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, time.Now().AddDate(0, 1, 0))

	pay := &PaymentService{DB: db}
	svc := &CheckoutService{DB: db, Payments: pay}

	orderID := fmt.Sprintf("FEE-%s-1756700000", inst.FeeInstallmentID)
	body := map[string]any{
		"order_id":           orderID,
		"transaction_status": "settlement",
		"gross_amount":       "500.00", // IDR → 50000 sen
	}

	require.NoError(t, svc.HandleWebhook(context.Background(), body))

	var fresh model.FeeInstallment
	require.NoError(t, db.First(&fresh, "fee_installment_id = ?", inst.FeeInstallmentID).Error)
	assert.Equal(t, int64(50000), fresh.FeeInstallmentAmountPaidCents)

	var payment model.StudentFeePayment
	require.NoError(t, db.First(&payment, "student_fee_payment_order_id = ?", orderID).Error)
	require.NotNil(t, payment.StudentFeePaymentMethodLabel)
	assert.Equal(t, "midtrans", *payment.StudentFeePaymentMethodLabel)

	// notifikasi ulang (midtrans retry) → idempotent, tidak dobel catat
	require.NoError(t, svc.HandleWebhook(context.Background(), body))
	require.NoError(t, db.First(&fresh, "fee_installment_id = ?", inst.FeeInstallmentID).Error)
	assert.Equal(t, int64(50000), fresh.FeeInstallmentAmountPaidCents)
}

func TestHandleWebhookIgnoresNonFinalStatuses(t *testing.T) {
	db := openTestDB(t)
	enr := seedEnrollment(t, db)
	inst := seedInstallment(t, db, enr.StudentEnrollmentID, 50000, 0, time.Now().AddDate(0, 1, 0))

	svc := &CheckoutService{DB: db, Payments: &PaymentService{DB: db}}
	orderID := fmt.Sprintf("FEE-%s-1756700000", inst.FeeInstallmentID)

	for _, status := range []string{"expire", "cancel", "deny", "pending"} {
		require.NoError(t, svc.HandleWebhook(context.Background(), map[string]any{
			"order_id":           orderID,
			"transaction_status": status,
		}))
	}

	var fresh model.FeeInstallment
	require.NoError(t, db.First(&fresh, "fee_installment_id = ?", inst.FeeInstallmentID).Error)
	assert.Equal(t, int64(0), fresh.FeeInstallmentAmountPaidCents)
}

func TestHandleWebhookRejectsMalformedPayload(t *testing.T) {
	db := openTestDB(t)
	svc := &CheckoutService{DB: db, Payments: &PaymentService{DB: db}}

	err := svc.HandleWebhook(context.Background(), map[string]any{"order_id": "FEE-x"})
	assert.True(t, IsValidation(err))

	err = svc.HandleWebhook(context.Background(), map[string]any{
		"order_id": "INV-123", "transaction_status": "settlement",
	})
	assert.True(t, IsValidation(err))
}
