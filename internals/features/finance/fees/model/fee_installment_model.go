// file: internals/features/finance/fees/model/fee_installment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status installment (derived, TIDAK disimpan di DB)
// =========================================================

type FeeInstallmentStatus string

const (
	FeeInstallmentStatusPending FeeInstallmentStatus = "pending"
	FeeInstallmentStatusPartial FeeInstallmentStatus = "partial"
	FeeInstallmentStatusPaid    FeeInstallmentStatus = "paid"
	FeeInstallmentStatusOverdue FeeInstallmentStatus = "overdue"
)

// =========================================================
// MODEL
// =========================================================
//
// Catatan uang: semua nominal bigint dalam sen (cents) supaya
// aritmetika eksak — tidak ada float.
//
// fee_installment_amount_paid_cents adalah agregat turunan
// (Σ payment non-deleted). Dipersist untuk efisiensi read, dan
// hanya boleh dimutasi PaymentService di bawah row lock.

type FeeInstallment struct {
	// PK
	FeeInstallmentID uuid.UUID `gorm:"column:fee_installment_id;type:uuid;primaryKey" json:"fee_installment_id"`

	// FK → student_enrollments(student_enrollment_id)
	FeeInstallmentEnrollmentID uuid.UUID `gorm:"column:fee_installment_enrollment_id;type:uuid;not null;index:ix_fee_installment_enrollment" json:"fee_installment_enrollment_id"`

	FeeInstallmentTitle string `gorm:"column:fee_installment_title;type:varchar(120);not null" json:"fee_installment_title"`

	// Amount (cents)
	FeeInstallmentAmountDueCents  int64 `gorm:"column:fee_installment_amount_due_cents;not null;check:fee_installment_amount_due_cents>0" json:"fee_installment_amount_due_cents"`
	FeeInstallmentAmountPaidCents int64 `gorm:"column:fee_installment_amount_paid_cents;not null;default:0;check:fee_installment_amount_paid_cents>=0" json:"fee_installment_amount_paid_cents"`

	FeeInstallmentDueDate time.Time `gorm:"column:fee_installment_due_date;not null;index:ix_fee_installment_due_date" json:"fee_installment_due_date"`

	FeeInstallmentNotes *string `gorm:"column:fee_installment_notes" json:"fee_installment_notes,omitempty"`

	// Timestamps (eksplisit)
	FeeInstallmentCreatedAt time.Time      `gorm:"column:fee_installment_created_at;not null" json:"fee_installment_created_at"`
	FeeInstallmentUpdatedAt time.Time      `gorm:"column:fee_installment_updated_at;not null" json:"fee_installment_updated_at"`
	FeeInstallmentDeletedAt gorm.DeletedAt `gorm:"column:fee_installment_deleted_at;index" json:"-"`
}

func (FeeInstallment) TableName() string {
	return "fee_installments"
}

// RemainingCents = sisa tagihan installment.
func (m *FeeInstallment) RemainingCents() int64 {
	return m.FeeInstallmentAmountDueCents - m.FeeInstallmentAmountPaidCents
}

// =========================================================
// HOOKS — id + timestamps eksplisit (portable: postgres & sqlite)
// =========================================================

func (m *FeeInstallment) BeforeCreate(tx *gorm.DB) (err error) {
	if m.FeeInstallmentID == uuid.Nil {
		m.FeeInstallmentID = uuid.New()
	}
	now := time.Now()
	if m.FeeInstallmentCreatedAt.IsZero() {
		m.FeeInstallmentCreatedAt = now
	}
	m.FeeInstallmentUpdatedAt = now
	return nil
}

func (m *FeeInstallment) BeforeUpdate(tx *gorm.DB) (err error) {
	m.FeeInstallmentUpdatedAt = time.Now()
	return nil
}
