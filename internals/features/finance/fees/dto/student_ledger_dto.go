// file: internals/features/finance/fees/dto/student_ledger_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/fees/service"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENT LEDGER — DTO
////////////////////////////////////////////////////////////////////////////////

type LedgerEntryAppendDTO struct {
	StudentLedgerEntryType            string  `json:"transaction_type" validate:"required,oneof=fee payment discount refund adjustment"`
	StudentLedgerEntryAmountCents     int64   `json:"amount_cents" validate:"required,gt=0"`
	StudentLedgerEntryTransactionDate string  `json:"transaction_date" validate:"required"`
	StudentLedgerEntryReferenceNumber *string `json:"reference_number,omitempty" validate:"omitempty,max=64"`
	StudentLedgerEntryPaymentMethod   *string `json:"payment_method,omitempty" validate:"omitempty,max=60"`
}

// Delete: alasan WAJIB (audit trail)
type LedgerEntryDeleteDTO struct {
	Reason string `json:"reason" validate:"required"`
}

type LedgerEntryResponse struct {
	StudentLedgerEntryID                uuid.UUID  `json:"student_ledger_entry_id"`
	StudentLedgerEntryEnrollmentID      uuid.UUID  `json:"student_ledger_entry_enrollment_id"`
	StudentLedgerEntrySeq               int64      `json:"student_ledger_entry_seq"`
	StudentLedgerEntryType              string     `json:"transaction_type"`
	StudentLedgerEntryAmountCents       int64      `json:"amount_cents"`
	StudentLedgerEntrySignedAmountCents int64      `json:"signed_amount_cents"`
	StudentLedgerEntryTransactionDate   time.Time  `json:"transaction_date"`
	StudentLedgerEntryBalanceAfterCents int64      `json:"balance_after_cents"`
	StudentLedgerEntryReferenceNumber   *string    `json:"reference_number,omitempty"`
	StudentLedgerEntryPaymentMethod     *string    `json:"payment_method,omitempty"`
	StudentLedgerEntryCreatedBy         uuid.UUID  `json:"created_by"`
	StudentLedgerEntryDeleted           bool       `json:"deleted"`
	StudentLedgerEntryDeletionReason    *string    `json:"deletion_reason,omitempty"`
	StudentLedgerEntryDeletedAt         *time.Time `json:"deleted_at,omitempty"`
	StudentLedgerEntryCreatedAt         time.Time  `json:"created_at"`
}

type StudentLedgerResponse struct {
	Entries []LedgerEntryResponse  `json:"entries"`
	Summary *service.LedgerSummary `json:"summary"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToLedgerEntryResponse(m model.StudentLedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		StudentLedgerEntryID:                m.StudentLedgerEntryID,
		StudentLedgerEntryEnrollmentID:      m.StudentLedgerEntryEnrollmentID,
		StudentLedgerEntrySeq:               m.StudentLedgerEntrySeq,
		StudentLedgerEntryType:              string(m.StudentLedgerEntryType),
		StudentLedgerEntryAmountCents:       m.StudentLedgerEntryAmountCents,
		StudentLedgerEntrySignedAmountCents: m.SignedAmountCents(),
		StudentLedgerEntryTransactionDate:   m.StudentLedgerEntryTransactionDate,
		StudentLedgerEntryBalanceAfterCents: m.StudentLedgerEntryBalanceAfterCents,
		StudentLedgerEntryReferenceNumber:   m.StudentLedgerEntryReferenceNumber,
		StudentLedgerEntryPaymentMethod:     m.StudentLedgerEntryPaymentMethod,
		StudentLedgerEntryCreatedBy:         m.StudentLedgerEntryCreatedBy,
		StudentLedgerEntryDeleted:           m.StudentLedgerEntryDeleted,
		StudentLedgerEntryDeletionReason:    m.StudentLedgerEntryDeletionReason,
		StudentLedgerEntryDeletedAt:         m.StudentLedgerEntryDeletedAt,
		StudentLedgerEntryCreatedAt:         m.StudentLedgerEntryCreatedAt,
	}
}

func ToLedgerEntryResponses(list []model.StudentLedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToLedgerEntryResponse(v))
	}
	return out
}
