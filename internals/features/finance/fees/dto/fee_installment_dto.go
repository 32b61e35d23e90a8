// file: internals/features/finance/fees/dto/fee_installment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/fees/service"
)

////////////////////////////////////////////////////////////////////////////////
// FEE INSTALLMENTS — DTO
////////////////////////////////////////////////////////////////////////////////

// Generate schedule (POST /enrollments/:id/generate-installments)
// Tanggal format YYYY-MM-DD atau RFC3339.
type GenerateInstallmentsDTO struct {
	TotalAmountCents     int64  `json:"total_amount_cents" validate:"required,gt=0"`
	NumberOfInstallments int    `json:"number_of_installments" validate:"required,min=1,max=12"`
	PeriodStart          string `json:"period_start" validate:"required"`
	PeriodEnd            string `json:"period_end" validate:"required"`
	Force                bool   `json:"force,omitempty"`
}

// Create manual 1 installment (di luar generator)
type FeeInstallmentCreateDTO struct {
	FeeInstallmentEnrollmentID   uuid.UUID `json:"fee_installment_enrollment_id" validate:"required"`
	FeeInstallmentTitle          string    `json:"fee_installment_title" validate:"required,max=120"`
	FeeInstallmentAmountDueCents int64     `json:"fee_installment_amount_due_cents" validate:"required,gt=0"`
	FeeInstallmentDueDate        string    `json:"fee_installment_due_date" validate:"required"`
	FeeInstallmentNotes          *string   `json:"fee_installment_notes,omitempty"`
}

// Update (partial) — amount_paid TIDAK bisa diubah dari sini,
// itu agregat milik PaymentService.
type FeeInstallmentUpdateDTO struct {
	FeeInstallmentTitle          *string `json:"fee_installment_title,omitempty" validate:"omitempty,max=120"`
	FeeInstallmentAmountDueCents *int64  `json:"fee_installment_amount_due_cents,omitempty" validate:"omitempty,gt=0"`
	FeeInstallmentDueDate        *string `json:"fee_installment_due_date,omitempty"`
	FeeInstallmentNotes          *string `json:"fee_installment_notes,omitempty"`
}

// Response — status & remaining derived saat mapping, tidak dari DB
type FeeInstallmentResponse struct {
	FeeInstallmentID           uuid.UUID `json:"fee_installment_id"`
	FeeInstallmentEnrollmentID uuid.UUID `json:"fee_installment_enrollment_id"`
	FeeInstallmentTitle        string    `json:"fee_installment_title"`

	FeeInstallmentAmountDueCents  int64 `json:"fee_installment_amount_due_cents"`
	FeeInstallmentAmountPaidCents int64 `json:"fee_installment_amount_paid_cents"`
	FeeInstallmentRemainingCents  int64 `json:"fee_installment_remaining_cents"`

	FeeInstallmentDueDate time.Time `json:"fee_installment_due_date"`
	FeeInstallmentStatus  string    `json:"fee_installment_status"` // pending|partial|paid|overdue

	FeeInstallmentNotes *string `json:"fee_installment_notes,omitempty"`

	FeeInstallmentCreatedAt time.Time  `json:"fee_installment_created_at"`
	FeeInstallmentUpdatedAt time.Time  `json:"fee_installment_updated_at"`
	FeeInstallmentDeletedAt *time.Time `json:"fee_installment_deleted_at,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS — Model <-> DTO
////////////////////////////////////////////////////////////////////////////////

// Model -> Response (status diderive terhadap `today`)
func ToFeeInstallmentResponse(m model.FeeInstallment, today time.Time) FeeInstallmentResponse {
	return FeeInstallmentResponse{
		FeeInstallmentID:              m.FeeInstallmentID,
		FeeInstallmentEnrollmentID:    m.FeeInstallmentEnrollmentID,
		FeeInstallmentTitle:           m.FeeInstallmentTitle,
		FeeInstallmentAmountDueCents:  m.FeeInstallmentAmountDueCents,
		FeeInstallmentAmountPaidCents: m.FeeInstallmentAmountPaidCents,
		FeeInstallmentRemainingCents:  m.RemainingCents(),
		FeeInstallmentDueDate:         m.FeeInstallmentDueDate,
		FeeInstallmentStatus: string(service.DeriveStatus(
			m.FeeInstallmentAmountDueCents,
			m.FeeInstallmentAmountPaidCents,
			m.FeeInstallmentDueDate,
			today,
		)),
		FeeInstallmentNotes:     m.FeeInstallmentNotes,
		FeeInstallmentCreatedAt: m.FeeInstallmentCreatedAt,
		FeeInstallmentUpdatedAt: m.FeeInstallmentUpdatedAt,
		FeeInstallmentDeletedAt: toPtrTimeFromDeletedAt(m.FeeInstallmentDeletedAt),
	}
}

func ToFeeInstallmentResponses(list []model.FeeInstallment, today time.Time) []FeeInstallmentResponse {
	out := make([]FeeInstallmentResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToFeeInstallmentResponse(v, today))
	}
	return out
}

// UpdateDTO -> Model (apply partial; due date sudah diparse controller)
func ApplyFeeInstallmentUpdate(m *model.FeeInstallment, d FeeInstallmentUpdateDTO, dueDate *time.Time) {
	if d.FeeInstallmentTitle != nil {
		m.FeeInstallmentTitle = *d.FeeInstallmentTitle
	}
	if d.FeeInstallmentAmountDueCents != nil {
		m.FeeInstallmentAmountDueCents = *d.FeeInstallmentAmountDueCents
	}
	if dueDate != nil {
		m.FeeInstallmentDueDate = *dueDate
	}
	if d.FeeInstallmentNotes != nil {
		m.FeeInstallmentNotes = d.FeeInstallmentNotes
	}
}

////////////////////////////////////////////////////////////////////////////////
// SMALL UTILS
////////////////////////////////////////////////////////////////////////////////

func toPtrTimeFromDeletedAt(d gorm.DeletedAt) *time.Time {
	if d.Valid {
		return &d.Time
	}
	return nil
}
