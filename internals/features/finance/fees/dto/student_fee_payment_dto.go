// file: internals/features/finance/fees/dto/student_fee_payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/fees/model"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENT FEE PAYMENTS — DTO
////////////////////////////////////////////////////////////////////////////////

type StudentFeePaymentCreateDTO struct {
	StudentFeePaymentInstallmentID uuid.UUID  `json:"fee_installment_id" validate:"required"`
	StudentFeePaymentAmountCents   int64      `json:"student_fee_payment_amount_cents" validate:"required,gt=0"`
	StudentFeePaymentDate          string     `json:"student_fee_payment_date" validate:"required"`
	StudentFeePaymentMethodID      *uuid.UUID `json:"student_fee_payment_method_id,omitempty"`
	StudentFeePaymentMethodLabel   *string    `json:"student_fee_payment_method_label,omitempty" validate:"omitempty,max=60"`
	StudentFeePaymentNotes         *string    `json:"student_fee_payment_notes,omitempty"`
}

// Update (partial)
type StudentFeePaymentUpdateDTO struct {
	StudentFeePaymentAmountCents *int64     `json:"student_fee_payment_amount_cents,omitempty" validate:"omitempty,gt=0"`
	StudentFeePaymentDate        *string    `json:"student_fee_payment_date,omitempty"`
	StudentFeePaymentMethodID    *uuid.UUID `json:"student_fee_payment_method_id,omitempty"`
	StudentFeePaymentMethodLabel *string    `json:"student_fee_payment_method_label,omitempty" validate:"omitempty,max=60"`
	StudentFeePaymentNotes       *string    `json:"student_fee_payment_notes,omitempty"`
}

type StudentFeePaymentResponse struct {
	StudentFeePaymentID            uuid.UUID  `json:"student_fee_payment_id"`
	StudentFeePaymentInstallmentID uuid.UUID  `json:"fee_installment_id"`
	StudentFeePaymentAmountCents   int64      `json:"student_fee_payment_amount_cents"`
	StudentFeePaymentDate          time.Time  `json:"student_fee_payment_date"`
	StudentFeePaymentMethodID      *uuid.UUID `json:"student_fee_payment_method_id,omitempty"`
	StudentFeePaymentMethodLabel   *string    `json:"student_fee_payment_method_label,omitempty"`
	StudentFeePaymentOrderID       *string    `json:"student_fee_payment_order_id,omitempty"`
	StudentFeePaymentReceivedBy    *uuid.UUID `json:"student_fee_payment_received_by,omitempty"`
	StudentFeePaymentNotes         *string    `json:"student_fee_payment_notes,omitempty"`
	StudentFeePaymentCreatedAt     time.Time  `json:"student_fee_payment_created_at"`
	StudentFeePaymentUpdatedAt     time.Time  `json:"student_fee_payment_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToStudentFeePaymentResponse(m model.StudentFeePayment) StudentFeePaymentResponse {
	return StudentFeePaymentResponse{
		StudentFeePaymentID:            m.StudentFeePaymentID,
		StudentFeePaymentInstallmentID: m.StudentFeePaymentInstallmentID,
		StudentFeePaymentAmountCents:   m.StudentFeePaymentAmountCents,
		StudentFeePaymentDate:          m.StudentFeePaymentDate,
		StudentFeePaymentMethodID:      m.StudentFeePaymentMethodID,
		StudentFeePaymentMethodLabel:   m.StudentFeePaymentMethodLabel,
		StudentFeePaymentOrderID:       m.StudentFeePaymentOrderID,
		StudentFeePaymentReceivedBy:    m.StudentFeePaymentReceivedBy,
		StudentFeePaymentNotes:         m.StudentFeePaymentNotes,
		StudentFeePaymentCreatedAt:     m.StudentFeePaymentCreatedAt,
		StudentFeePaymentUpdatedAt:     m.StudentFeePaymentUpdatedAt,
	}
}

func ToStudentFeePaymentResponses(list []model.StudentFeePayment) []StudentFeePaymentResponse {
	out := make([]StudentFeePaymentResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToStudentFeePaymentResponse(v))
	}
	return out
}
