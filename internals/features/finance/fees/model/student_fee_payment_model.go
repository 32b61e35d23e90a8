// file: internals/features/finance/fees/model/student_fee_payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — pembayaran per installment
// =========================================================
//
// Satu payment dimiliki tepat satu installment. Soft delete
// (gorm.DeletedAt) — agregat amount_paid installment hanya
// menghitung payment yang masih hidup.

type StudentFeePayment struct {
	// PK
	StudentFeePaymentID uuid.UUID `gorm:"column:student_fee_payment_id;type:uuid;primaryKey" json:"student_fee_payment_id"`

	// FK → fee_installments(fee_installment_id)
	StudentFeePaymentInstallmentID uuid.UUID `gorm:"column:student_fee_payment_installment_id;type:uuid;not null;index:ix_student_fee_payment_installment" json:"student_fee_payment_installment_id"`

	// Amount (cents), harus > 0
	StudentFeePaymentAmountCents int64 `gorm:"column:student_fee_payment_amount_cents;not null;check:student_fee_payment_amount_cents>0" json:"student_fee_payment_amount_cents"`

	StudentFeePaymentDate time.Time `gorm:"column:student_fee_payment_date;not null;index:ix_student_fee_payment_date" json:"student_fee_payment_date"`

	// Metode pembayaran: id master (modul lain) + label snapshot
	StudentFeePaymentMethodID    *uuid.UUID `gorm:"column:student_fee_payment_method_id;type:uuid;index" json:"student_fee_payment_method_id,omitempty"`
	StudentFeePaymentMethodLabel *string    `gorm:"column:student_fee_payment_method_label;type:varchar(60)" json:"student_fee_payment_method_label,omitempty"`

	// Order id gateway (midtrans) — unik kalau ada
	StudentFeePaymentOrderID *string `gorm:"column:student_fee_payment_order_id;type:varchar(64);uniqueIndex:uniq_student_fee_payment_order_id" json:"student_fee_payment_order_id,omitempty"`

	StudentFeePaymentReceivedBy *uuid.UUID `gorm:"column:student_fee_payment_received_by;type:uuid" json:"student_fee_payment_received_by,omitempty"`
	StudentFeePaymentNotes      *string    `gorm:"column:student_fee_payment_notes" json:"student_fee_payment_notes,omitempty"`

	// Timestamps (eksplisit)
	StudentFeePaymentCreatedAt time.Time      `gorm:"column:student_fee_payment_created_at;not null" json:"student_fee_payment_created_at"`
	StudentFeePaymentUpdatedAt time.Time      `gorm:"column:student_fee_payment_updated_at;not null" json:"student_fee_payment_updated_at"`
	StudentFeePaymentDeletedAt gorm.DeletedAt `gorm:"column:student_fee_payment_deleted_at;index" json:"-"`
}

func (StudentFeePayment) TableName() string {
	return "student_fee_payments"
}

// =========================================================
// HOOKS
// =========================================================

func (m *StudentFeePayment) BeforeCreate(tx *gorm.DB) (err error) {
	if m.StudentFeePaymentID == uuid.Nil {
		m.StudentFeePaymentID = uuid.New()
	}
	now := time.Now()
	if m.StudentFeePaymentCreatedAt.IsZero() {
		m.StudentFeePaymentCreatedAt = now
	}
	m.StudentFeePaymentUpdatedAt = now
	return nil
}

func (m *StudentFeePayment) BeforeUpdate(tx *gorm.DB) (err error) {
	m.StudentFeePaymentUpdatedAt = time.Now()
	return nil
}
