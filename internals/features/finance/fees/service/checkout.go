// file: internals/features/finance/fees/service/checkout.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/model"
)

// =========================================================
// CHECKOUT — pembayaran installment online via Midtrans Snap
// =========================================================

var SnapClient snap.Client

// InitMidtrans menginisialisasi Midtrans Snap Client dengan server key.
func InitMidtrans(serverKey string, production bool) {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

const checkoutOrderPrefix = "FEE-"

type CheckoutService struct {
	DB       *gorm.DB
	Payments *PaymentService
}

// CreateSnapToken membuat transaksi Snap sebesar SISA tagihan
// installment. Order id meng-encode installment id supaya webhook
// bisa resolve balik tanpa tabel mapping.
func (s *CheckoutService) CreateSnapToken(ctx context.Context, installmentID uuid.UUID, payerName, payerEmail string) (orderID, token string, err error) {
	var inst model.FeeInstallment
	if err := s.DB.WithContext(ctx).
		First(&inst, "fee_installment_id = ?", installmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", &NotFoundError{Resource: "fee installment"}
		}
		return "", "", &PersistenceError{Err: err}
	}

	remaining := inst.RemainingCents()
	if remaining <= 0 {
		return "", "", &ConflictError{Message: "installment is already fully paid"}
	}

	orderID = fmt.Sprintf("%s%s-%d", checkoutOrderPrefix, inst.FeeInstallmentID, time.Now().Unix())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: remaining / 100, // IDR tanpa sen
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payerName,
			Email: payerEmail,
		},
	}

	resp, snapErr := SnapClient.CreateTransaction(req)
	if snapErr != nil {
		return "", "", &PersistenceError{Err: snapErr}
	}
	return orderID, resp.Token, nil
}

// HandleWebhook dipanggil saat menerima notifikasi status dari Midtrans.
// capture/settlement → catat payment via PaymentService (validasi
// agregat tetap satu pintu). Notifikasi duplikat aman: order id unik
// di student_fee_payments.
func (s *CheckoutService) HandleWebhook(ctx context.Context, body map[string]any) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		return NewValidationError("payload", "invalid webhook payload")
	}

	installmentID, err := installmentIDFromOrderID(orderID)
	if err != nil {
		return NewValidationError("order_id", "unrecognized order id format")
	}

	switch status {
	case "capture", "settlement":
		amountCents, err := grossAmountCents(body)
		if err != nil {
			return NewValidationError("gross_amount", "invalid gross_amount")
		}
		label := "midtrans"
		_, _, err = s.Payments.Record(ctx, RecordPaymentInput{
			InstallmentID: installmentID,
			AmountCents:   amountCents,
			Date:          time.Now(),
			MethodLabel:   &label,
			OrderID:       &orderID,
		})
		if err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) && strings.Contains(conflict.Message, "duplicate payment order id") {
				log.Printf("[INFO] webhook duplikat untuk order %s — sudah tercatat", orderID)
				return nil
			}
			return err
		}
		return nil

	case "expire", "cancel", "deny":
		log.Printf("[INFO] order %s berakhir tanpa pembayaran (status=%s)", orderID, status)
		return nil

	default:
		log.Printf("[INFO] status midtrans tidak diproses: %s (order %s)", status, orderID)
		return nil
	}
}

// =========================================================
// INTERNAL
// =========================================================

func installmentIDFromOrderID(orderID string) (uuid.UUID, error) {
	if !strings.HasPrefix(orderID, checkoutOrderPrefix) {
		return uuid.Nil, fmt.Errorf("missing prefix")
	}
	rest := strings.TrimPrefix(orderID, checkoutOrderPrefix)
	// format: FEE-<uuid>-<unix>; uuid selalu 36 char
	if len(rest) < 36 {
		return uuid.Nil, fmt.Errorf("too short")
	}
	return uuid.Parse(rest[:36])
}

func grossAmountCents(body map[string]any) (int64, error) {
	switch v := body["gross_amount"].(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, err
		}
		return int64(f*100 + 0.5), nil
	case float64:
		return int64(v*100 + 0.5), nil
	default:
		return 0, fmt.Errorf("missing gross_amount")
	}
}
