// file: internals/features/finance/fees/service/schedule.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/model"
)

// =========================================================
// SCHEDULE SERVICE — generate installment dari total tagihan
// =========================================================

const (
	MinInstallmentCount = 1
	MaxInstallmentCount = 12
)

type ScheduleService struct {
	DB *gorm.DB
}

type GenerateScheduleInput struct {
	EnrollmentID     uuid.UUID
	TotalAmountCents int64
	Count            int
	PeriodStart      time.Time
	PeriodEnd        time.Time

	// Force: hapus (soft) schedule lama dulu. Hanya boleh kalau belum
	// ada satu pun payment tercatat pada schedule lama.
	Force bool
}

// Generate membuat N installment bertanggal untuk satu enrollment.
//
// Pembagian nominal: base = total / count (floor, cents); sisa
// (total − base*count, selalu 0..count-1 sen) ditambahkan ke
// installment TERAKHIR supaya Σ amount == total eksak.
//
// Tanggal: interval [period_start, period_end] dibagi count sama
// panjang; due_date[i] = period_start + i*(end−start)/count untuk
// i = 1..count (installment terakhir jatuh tempo tepat di period_end).
//
// Idempotency guard: tolak regenerate selama masih ada installment
// hidup untuk enrollment tsb, kecuali Force.
func (s *ScheduleService) Generate(ctx context.Context, in GenerateScheduleInput) ([]model.FeeInstallment, error) {
	if in.EnrollmentID == uuid.Nil {
		return nil, NewValidationError("enrollment_id", "enrollment_id is required")
	}
	if in.TotalAmountCents <= 0 {
		return nil, NewValidationError("total_amount_cents", "total_amount_cents must be positive")
	}
	if in.Count < MinInstallmentCount || in.Count > MaxInstallmentCount {
		return nil, NewValidationError("number_of_installments",
			fmt.Sprintf("number_of_installments must be between %d and %d", MinInstallmentCount, MaxInstallmentCount))
	}
	if !in.PeriodEnd.After(in.PeriodStart) {
		return nil, NewValidationError("period_end", "period_end must be after period_start")
	}

	var created []model.FeeInstallment

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialisasi per enrollment: lock baris enrollment
		var enr model.StudentEnrollment
		if err := lockForUpdate(tx).
			First(&enr, "student_enrollment_id = ?", in.EnrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "enrollment"}
			}
			return &PersistenceError{Err: err}
		}

		var existing []model.FeeInstallment
		if err := tx.
			Where("fee_installment_enrollment_id = ?", in.EnrollmentID).
			Find(&existing).Error; err != nil {
			return &PersistenceError{Err: err}
		}

		if len(existing) > 0 {
			if !in.Force {
				return &ConflictError{Message: "installment schedule already exists for this enrollment"}
			}
			// Force hanya boleh kalau schedule lama masih bersih
			for i := range existing {
				if existing[i].FeeInstallmentAmountPaidCents > 0 {
					return &ConflictError{Message: "cannot force-regenerate: payments already recorded on the existing schedule"}
				}
			}
			if err := tx.
				Where("fee_installment_enrollment_id = ?", in.EnrollmentID).
				Delete(&model.FeeInstallment{}).Error; err != nil {
				return &PersistenceError{Err: err}
			}
		}

		base := in.TotalAmountCents / int64(in.Count)
		remainder := in.TotalAmountCents - base*int64(in.Count)
		interval := in.PeriodEnd.Sub(in.PeriodStart)

		created = make([]model.FeeInstallment, 0, in.Count)
		for i := 1; i <= in.Count; i++ {
			amount := base
			if i == in.Count {
				amount += remainder
			}
			due := in.PeriodStart.Add(interval * time.Duration(i) / time.Duration(in.Count))

			created = append(created, model.FeeInstallment{
				FeeInstallmentEnrollmentID:    in.EnrollmentID,
				FeeInstallmentTitle:           fmt.Sprintf("Installment %d", i),
				FeeInstallmentAmountDueCents:  amount,
				FeeInstallmentAmountPaidCents: 0,
				FeeInstallmentDueDate:         due,
			})
		}

		if err := tx.Create(&created).Error; err != nil {
			return &PersistenceError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
