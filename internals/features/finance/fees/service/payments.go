// file: internals/features/finance/fees/service/payments.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/model"
)

// =========================================================
// PAYMENT SERVICE — alokasi pembayaran per installment
// =========================================================
//
// fee_installment_amount_paid_cents adalah agregat yang dimutasi
// (bukan append-only), jadi SEMUA operasi di sini mengunci baris
// installment (FOR UPDATE) dan jalan dalam satu transaksi.

type PaymentService struct {
	DB *gorm.DB
}

type RecordPaymentInput struct {
	InstallmentID uuid.UUID
	AmountCents   int64
	Date          time.Time
	MethodID      *uuid.UUID
	MethodLabel   *string
	OrderID       *string
	Notes         *string
	ReceivedBy    *uuid.UUID
}

type UpdatePaymentInput struct {
	AmountCents *int64
	Date        *time.Time
	MethodID    *uuid.UUID
	MethodLabel *string
	Notes       *string
}

// Record mencatat payment baru: validasi 0 < amount ≤ sisa,
// insert payment + increment agregat — atomic.
func (s *PaymentService) Record(ctx context.Context, in RecordPaymentInput) (*model.StudentFeePayment, *model.FeeInstallment, error) {
	if in.AmountCents <= 0 {
		return nil, nil, NewValidationError("amount_cents", "amount_cents must be positive")
	}
	if in.Date.IsZero() {
		return nil, nil, NewValidationError("payment_date", "payment_date is required")
	}

	var (
		payment model.StudentFeePayment
		inst    model.FeeInstallment
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			First(&inst, "fee_installment_id = ?", in.InstallmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "fee installment"}
			}
			return &PersistenceError{Err: err}
		}

		if in.AmountCents > inst.RemainingCents() {
			return &ConflictError{Message: "payment exceeds remaining amount due (overpayment rejected)"}
		}

		payment = model.StudentFeePayment{
			StudentFeePaymentInstallmentID: inst.FeeInstallmentID,
			StudentFeePaymentAmountCents:   in.AmountCents,
			StudentFeePaymentDate:          in.Date,
			StudentFeePaymentMethodID:      in.MethodID,
			StudentFeePaymentMethodLabel:   in.MethodLabel,
			StudentFeePaymentOrderID:       in.OrderID,
			StudentFeePaymentReceivedBy:    in.ReceivedBy,
			StudentFeePaymentNotes:         in.Notes,
		}
		if err := tx.Create(&payment).Error; err != nil {
			if isUniqueViolation(err) {
				return &ConflictError{Message: "duplicate payment order id"}
			}
			return &PersistenceError{Err: err}
		}

		inst.FeeInstallmentAmountPaidCents += in.AmountCents
		if err := tx.Save(&inst).Error; err != nil {
			return &PersistenceError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, &inst, nil
}

// Update mengubah payment; sisa dihitung ulang TANPA payment yang
// sedang diedit sebelum revalidasi, lalu delta diterapkan ke agregat.
func (s *PaymentService) Update(ctx context.Context, paymentID uuid.UUID, in UpdatePaymentInput) (*model.StudentFeePayment, *model.FeeInstallment, error) {
	if in.AmountCents != nil && *in.AmountCents <= 0 {
		return nil, nil, NewValidationError("amount_cents", "amount_cents must be positive")
	}

	var (
		payment model.StudentFeePayment
		inst    model.FeeInstallment
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, "student_fee_payment_id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "student fee payment"}
			}
			return &PersistenceError{Err: err}
		}

		// Lock induk SETELAH payment ketemu — urutan lock konsisten
		// dengan Record/Delete (selalu installment dulu baru mutasi).
		if err := lockForUpdate(tx).
			First(&inst, "fee_installment_id = ?", payment.StudentFeePaymentInstallmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "fee installment"}
			}
			return &PersistenceError{Err: err}
		}

		oldAmount := payment.StudentFeePaymentAmountCents
		newAmount := oldAmount
		if in.AmountCents != nil {
			newAmount = *in.AmountCents
		}

		remainingExcl := inst.FeeInstallmentAmountDueCents - (inst.FeeInstallmentAmountPaidCents - oldAmount)
		if newAmount > remainingExcl {
			return &ConflictError{Message: "payment exceeds remaining amount due (overpayment rejected)"}
		}

		payment.StudentFeePaymentAmountCents = newAmount
		if in.Date != nil {
			payment.StudentFeePaymentDate = *in.Date
		}
		if in.MethodID != nil {
			payment.StudentFeePaymentMethodID = in.MethodID
		}
		if in.MethodLabel != nil {
			payment.StudentFeePaymentMethodLabel = in.MethodLabel
		}
		if in.Notes != nil {
			payment.StudentFeePaymentNotes = in.Notes
		}
		if err := tx.Save(&payment).Error; err != nil {
			return &PersistenceError{Err: err}
		}

		if delta := newAmount - oldAmount; delta != 0 {
			inst.FeeInstallmentAmountPaidCents += delta
			if err := tx.Save(&inst).Error; err != nil {
				return &PersistenceError{Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, &inst, nil
}

// Delete soft-delete payment + decrement agregat — atomic.
func (s *PaymentService) Delete(ctx context.Context, paymentID uuid.UUID) (*model.FeeInstallment, error) {
	var inst model.FeeInstallment

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment model.StudentFeePayment
		if err := tx.First(&payment, "student_fee_payment_id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "student fee payment"}
			}
			return &PersistenceError{Err: err}
		}

		if err := lockForUpdate(tx).
			First(&inst, "fee_installment_id = ?", payment.StudentFeePaymentInstallmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "fee installment"}
			}
			return &PersistenceError{Err: err}
		}

		if err := tx.Delete(&payment).Error; err != nil {
			return &PersistenceError{Err: err}
		}

		inst.FeeInstallmentAmountPaidCents -= payment.StudentFeePaymentAmountCents
		if inst.FeeInstallmentAmountPaidCents < 0 {
			// agregat tidak boleh negatif — indikasi data korup, rollback
			return &ConcurrencyError{Message: "aggregate amount_paid would go negative"}
		}
		if err := tx.Save(&inst).Error; err != nil {
			return &PersistenceError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inst, nil
}
