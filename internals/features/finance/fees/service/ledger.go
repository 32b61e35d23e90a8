// file: internals/features/finance/fees/service/ledger.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/model"
)

// =========================================================
// LEDGER SERVICE — rantai running balance per enrollment
// =========================================================
//
// Single writer per enrollment: setiap mutasi mengunci baris
// enrollment (FOR UPDATE) sebelum membaca balance terakhir, supaya
// dua append konkuren tidak menghitung balance_after dari prior
// yang sama.
//
// Urutan rantai: (transaction_date, seq) — seq monoton per
// enrollment sebagai tie-break untuk tanggal sama.

type LedgerService struct {
	DB *gorm.DB
}

type AppendEntryInput struct {
	EnrollmentID    uuid.UUID
	Type            model.LedgerTransactionType
	AmountCents     int64
	TransactionDate time.Time
	ReferenceNumber *string
	PaymentMethod   *string
	CreatedBy       uuid.UUID
}

type LedgerSummary struct {
	TotalFeesCents        int64 `json:"total_fees_cents"`
	TotalPaymentsCents    int64 `json:"total_payments_cents"`
	TotalDiscountsCents   int64 `json:"total_discounts_cents"`
	TotalRefundsCents     int64 `json:"total_refunds_cents"`
	TotalAdjustmentsCents int64 `json:"total_adjustments_cents"`
	CurrentBalanceCents   int64 `json:"current_balance_cents"`
}

// Append menulis entry baru di ujung rantai:
// balance_after = lastBalance + signed(type, amount).
// Entry backdated (tanggal sebelum ujung rantai) memicu recompute
// satu rantai penuh dalam transaksi yang sama — rantai tidak pernah
// terlihat setengah benar.
func (s *LedgerService) Append(ctx context.Context, in AppendEntryInput) (*model.StudentLedgerEntry, error) {
	if !in.Type.Valid() {
		return nil, NewValidationError("transaction_type", "transaction_type must be one of fee|payment|discount|refund|adjustment")
	}
	if in.AmountCents <= 0 {
		return nil, NewValidationError("amount_cents", "amount_cents must be positive")
	}
	if in.TransactionDate.IsZero() {
		return nil, NewValidationError("transaction_date", "transaction_date is required")
	}
	if in.CreatedBy == uuid.Nil {
		return nil, NewValidationError("created_by", "created_by is required")
	}

	var entry model.StudentLedgerEntry

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockEnrollment(tx, in.EnrollmentID); err != nil {
			return err
		}

		// Ujung rantai saat ini (entry hidup terakhir)
		var last model.StudentLedgerEntry
		lastBalance := int64(0)
		hasLast := true
		if err := tx.
			Where("student_ledger_entry_enrollment_id = ? AND student_ledger_entry_deleted = ?", in.EnrollmentID, false).
			Order("student_ledger_entry_transaction_date DESC").
			Order("student_ledger_entry_seq DESC").
			First(&last).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return &PersistenceError{Err: err}
			}
			hasLast = false
		} else {
			lastBalance = last.StudentLedgerEntryBalanceAfterCents
		}

		// seq berikutnya: max seq (termasuk entry deleted) + 1
		var maxSeq int64
		if err := tx.Model(&model.StudentLedgerEntry{}).
			Where("student_ledger_entry_enrollment_id = ?", in.EnrollmentID).
			Select("COALESCE(MAX(student_ledger_entry_seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return &PersistenceError{Err: err}
		}

		entry = model.StudentLedgerEntry{
			StudentLedgerEntryEnrollmentID:      in.EnrollmentID,
			StudentLedgerEntrySeq:               maxSeq + 1,
			StudentLedgerEntryType:              in.Type,
			StudentLedgerEntryAmountCents:       in.AmountCents,
			StudentLedgerEntryTransactionDate:   in.TransactionDate,
			StudentLedgerEntryBalanceAfterCents: lastBalance + in.Type.Sign()*in.AmountCents,
			StudentLedgerEntryReferenceNumber:   in.ReferenceNumber,
			StudentLedgerEntryPaymentMethod:     in.PaymentMethod,
			StudentLedgerEntryCreatedBy:         in.CreatedBy,
		}
		if err := tx.Create(&entry).Error; err != nil {
			if isUniqueViolation(err) {
				return &ConcurrencyError{Message: "concurrent ledger append detected"}
			}
			return &PersistenceError{Err: err}
		}

		// Backdated? entry baru bukan ujung kronologis → rapikan rantai
		if hasLast && entry.StudentLedgerEntryTransactionDate.Before(last.StudentLedgerEntryTransactionDate) {
			if err := s.recomputeChain(tx, in.EnrollmentID); err != nil {
				return err
			}
			// muat ulang balance final entry ini
			if err := tx.First(&entry, "student_ledger_entry_id = ?", entry.StudentLedgerEntryID).Error; err != nil {
				return &PersistenceError{Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete menandai entry terhapus (logical, alasan WAJIB) lalu — dalam
// transaksi yang sama — menghitung ulang balance_after semua entry
// tersisa dari nol. All-or-nothing: crash di tengah = rollback utuh.
func (s *LedgerService) Delete(ctx context.Context, entryID uuid.UUID, reason string, deletedBy uuid.UUID) (*model.StudentLedgerEntry, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, NewValidationError("reason", "deletion reason is required")
	}

	var entry model.StudentLedgerEntry

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry,
			"student_ledger_entry_id = ? AND student_ledger_entry_deleted = ?", entryID, false).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "ledger entry"}
			}
			return &PersistenceError{Err: err}
		}

		if err := s.lockEnrollment(tx, entry.StudentLedgerEntryEnrollmentID); err != nil {
			return err
		}

		now := time.Now()
		entry.StudentLedgerEntryDeleted = true
		entry.StudentLedgerEntryDeletionReason = &reason
		entry.StudentLedgerEntryDeletedBy = &deletedBy
		entry.StudentLedgerEntryDeletedAt = &now
		if err := tx.Save(&entry).Error; err != nil {
			return &PersistenceError{Err: err}
		}

		return s.recomputeChain(tx, entry.StudentLedgerEntryEnrollmentID)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListForEnrollment mengembalikan rantai hidup terurut + agregat.
func (s *LedgerService) ListForEnrollment(ctx context.Context, enrollmentID uuid.UUID) ([]model.StudentLedgerEntry, *LedgerSummary, error) {
	db := s.DB.WithContext(ctx)

	var exists int64
	if err := db.Model(&model.StudentEnrollment{}).
		Where("student_enrollment_id = ?", enrollmentID).
		Count(&exists).Error; err != nil {
		return nil, nil, &PersistenceError{Err: err}
	}
	if exists == 0 {
		return nil, nil, &NotFoundError{Resource: "enrollment"}
	}

	var entries []model.StudentLedgerEntry
	if err := db.
		Where("student_ledger_entry_enrollment_id = ? AND student_ledger_entry_deleted = ?", enrollmentID, false).
		Order("student_ledger_entry_transaction_date ASC").
		Order("student_ledger_entry_seq ASC").
		Find(&entries).Error; err != nil {
		return nil, nil, &PersistenceError{Err: err}
	}

	summary := &LedgerSummary{}
	for i := range entries {
		amt := entries[i].StudentLedgerEntryAmountCents
		switch entries[i].StudentLedgerEntryType {
		case model.LedgerTxFee:
			summary.TotalFeesCents += amt
		case model.LedgerTxPayment:
			summary.TotalPaymentsCents += amt
		case model.LedgerTxDiscount:
			summary.TotalDiscountsCents += amt
		case model.LedgerTxRefund:
			summary.TotalRefundsCents += amt
		case model.LedgerTxAdjustment:
			summary.TotalAdjustmentsCents += amt
		}
	}
	if n := len(entries); n > 0 {
		summary.CurrentBalanceCents = entries[n-1].StudentLedgerEntryBalanceAfterCents
	}
	return entries, summary, nil
}

// =========================================================
// INTERNAL
// =========================================================

func (s *LedgerService) lockEnrollment(tx *gorm.DB, enrollmentID uuid.UUID) error {
	var enr model.StudentEnrollment
	if err := lockForUpdate(tx).
		First(&enr, "student_enrollment_id = ?", enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "enrollment"}
		}
		return &PersistenceError{Err: err}
	}
	return nil
}

// recomputeChain re-walk semua entry hidup terurut (transaction_date,
// seq) dan tulis ulang balance_after dari nol. Dipanggil HANYA di
// dalam transaksi pemanggil (caller sudah pegang lock enrollment).
func (s *LedgerService) recomputeChain(tx *gorm.DB, enrollmentID uuid.UUID) error {
	var entries []model.StudentLedgerEntry
	if err := tx.
		Where("student_ledger_entry_enrollment_id = ? AND student_ledger_entry_deleted = ?", enrollmentID, false).
		Order("student_ledger_entry_transaction_date ASC").
		Order("student_ledger_entry_seq ASC").
		Find(&entries).Error; err != nil {
		return &PersistenceError{Err: err}
	}

	running := int64(0)
	for i := range entries {
		running += entries[i].SignedAmountCents()
		if entries[i].StudentLedgerEntryBalanceAfterCents == running {
			continue // sudah benar, hemat write
		}
		if err := tx.Model(&model.StudentLedgerEntry{}).
			Where("student_ledger_entry_id = ?", entries[i].StudentLedgerEntryID).
			Update("student_ledger_entry_balance_after_cents", running).Error; err != nil {
			return &PersistenceError{Err: err}
		}
	}
	return nil
}
