// file: internals/features/finance/fees/model/student_ledger_entry_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — tipe transaksi ledger
// =========================================================

type LedgerTransactionType string

const (
	LedgerTxFee        LedgerTransactionType = "fee"
	LedgerTxPayment    LedgerTransactionType = "payment"
	LedgerTxDiscount   LedgerTransactionType = "discount"
	LedgerTxRefund     LedgerTransactionType = "refund"
	LedgerTxAdjustment LedgerTransactionType = "adjustment"
)

func (t LedgerTransactionType) Valid() bool {
	switch t {
	case LedgerTxFee, LedgerTxPayment, LedgerTxDiscount, LedgerTxRefund, LedgerTxAdjustment:
		return true
	}
	return false
}

// Sign: fee/adjustment menambah outstanding balance,
// payment/discount/refund mengurangi. Konvensi tanda tetap.
func (t LedgerTransactionType) Sign() int64 {
	switch t {
	case LedgerTxFee, LedgerTxAdjustment:
		return 1
	case LedgerTxPayment, LedgerTxDiscount, LedgerTxRefund:
		return -1
	}
	return 0
}

// =========================================================
// MODEL — entry ledger per enrollment
// =========================================================
//
// Append-mostly. Delete HANYA logical (flag + alasan wajib) supaya
// audit trail utuh; balance_after dihitung ulang satu rantai penuh
// dalam transaksi yang sama.
//
// Urutan rantai: (transaction_date, seq). seq monoton per enrollment,
// diberikan AppendEntry di bawah lock enrollment — tie-break untuk
// entry dengan tanggal sama.

type StudentLedgerEntry struct {
	// PK
	StudentLedgerEntryID uuid.UUID `gorm:"column:student_ledger_entry_id;type:uuid;primaryKey" json:"student_ledger_entry_id"`

	// FK → student_enrollments(student_enrollment_id)
	StudentLedgerEntryEnrollmentID uuid.UUID `gorm:"column:student_ledger_entry_enrollment_id;type:uuid;not null;index:ix_student_ledger_entry_enrollment;uniqueIndex:uniq_student_ledger_entry_seq,priority:1" json:"student_ledger_entry_enrollment_id"`

	// Monoton per enrollment (tie-break urutan)
	StudentLedgerEntrySeq int64 `gorm:"column:student_ledger_entry_seq;not null;uniqueIndex:uniq_student_ledger_entry_seq,priority:2" json:"student_ledger_entry_seq"`

	StudentLedgerEntryType LedgerTransactionType `gorm:"column:student_ledger_entry_type;type:varchar(20);not null;index:ix_student_ledger_entry_type" json:"student_ledger_entry_type"`

	// Magnitudo positif (cents); tanda ditentukan type
	StudentLedgerEntryAmountCents int64 `gorm:"column:student_ledger_entry_amount_cents;not null;check:student_ledger_entry_amount_cents>0" json:"student_ledger_entry_amount_cents"`

	StudentLedgerEntryTransactionDate time.Time `gorm:"column:student_ledger_entry_transaction_date;not null;index:ix_student_ledger_entry_tx_date" json:"student_ledger_entry_transaction_date"`

	// Running balance setelah entry ini (computed, stored)
	StudentLedgerEntryBalanceAfterCents int64 `gorm:"column:student_ledger_entry_balance_after_cents;not null" json:"student_ledger_entry_balance_after_cents"`

	StudentLedgerEntryReferenceNumber *string `gorm:"column:student_ledger_entry_reference_number;type:varchar(64)" json:"student_ledger_entry_reference_number,omitempty"`
	StudentLedgerEntryPaymentMethod   *string `gorm:"column:student_ledger_entry_payment_method;type:varchar(60)" json:"student_ledger_entry_payment_method,omitempty"`

	StudentLedgerEntryCreatedBy uuid.UUID `gorm:"column:student_ledger_entry_created_by;type:uuid;not null" json:"student_ledger_entry_created_by"`

	// Logical delete (audit) — bukan gorm.DeletedAt, alasan wajib
	StudentLedgerEntryDeleted        bool       `gorm:"column:student_ledger_entry_deleted;not null;default:false;index:ix_student_ledger_entry_deleted" json:"student_ledger_entry_deleted"`
	StudentLedgerEntryDeletionReason *string    `gorm:"column:student_ledger_entry_deletion_reason" json:"student_ledger_entry_deletion_reason,omitempty"`
	StudentLedgerEntryDeletedBy      *uuid.UUID `gorm:"column:student_ledger_entry_deleted_by;type:uuid" json:"student_ledger_entry_deleted_by,omitempty"`
	StudentLedgerEntryDeletedAt      *time.Time `gorm:"column:student_ledger_entry_deleted_at" json:"student_ledger_entry_deleted_at,omitempty"`

	// Timestamps (eksplisit)
	StudentLedgerEntryCreatedAt time.Time `gorm:"column:student_ledger_entry_created_at;not null" json:"student_ledger_entry_created_at"`
	StudentLedgerEntryUpdatedAt time.Time `gorm:"column:student_ledger_entry_updated_at;not null" json:"student_ledger_entry_updated_at"`
}

func (StudentLedgerEntry) TableName() string {
	return "student_ledger_entries"
}

// SignedAmountCents = amount dengan tanda sesuai type.
func (m *StudentLedgerEntry) SignedAmountCents() int64 {
	return m.StudentLedgerEntryType.Sign() * m.StudentLedgerEntryAmountCents
}

// =========================================================
// HOOKS
// =========================================================

func (m *StudentLedgerEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if m.StudentLedgerEntryID == uuid.Nil {
		m.StudentLedgerEntryID = uuid.New()
	}
	now := time.Now()
	if m.StudentLedgerEntryCreatedAt.IsZero() {
		m.StudentLedgerEntryCreatedAt = now
	}
	m.StudentLedgerEntryUpdatedAt = now
	return nil
}

func (m *StudentLedgerEntry) BeforeUpdate(tx *gorm.DB) (err error) {
	m.StudentLedgerEntryUpdatedAt = time.Now()
	return nil
}
