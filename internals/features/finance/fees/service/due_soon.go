// file: internals/features/finance/fees/service/due_soon.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/model"
)

// =========================================================
// DUE SOON — query installment yang perlu reminder
// =========================================================
//
// Read-only. Window [today, today+days] otomatis mengecualikan
// overdue (due_date ≥ today), jadi status derived kandidat selalu
// pending/partial.

type DueSoonService struct {
	DB *gorm.DB
}

type DueSoonItem struct {
	Installment model.FeeInstallment
	Enrollment  model.StudentEnrollment
}

func (s *DueSoonService) FindDueWithin(ctx context.Context, days int, today time.Time) ([]DueSoonItem, error) {
	if days < 0 {
		return nil, NewValidationError("days", "days must not be negative")
	}

	from := dateOnly(today)
	to := from.AddDate(0, 0, days).Add(24*time.Hour - time.Nanosecond)

	var installments []model.FeeInstallment
	if err := s.DB.WithContext(ctx).
		Where("fee_installment_amount_paid_cents < fee_installment_amount_due_cents").
		Where("fee_installment_due_date BETWEEN ? AND ?", from, to).
		Order("fee_installment_due_date ASC").
		Find(&installments).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if len(installments) == 0 {
		return []DueSoonItem{}, nil
	}

	// Ambil konteks enrollment sekali jalan
	enrollmentIDs := make([]uuid.UUID, 0, len(installments))
	seen := map[uuid.UUID]struct{}{}
	for i := range installments {
		id := installments[i].FeeInstallmentEnrollmentID
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			enrollmentIDs = append(enrollmentIDs, id)
		}
	}

	var enrollments []model.StudentEnrollment
	if err := s.DB.WithContext(ctx).
		Where("student_enrollment_id IN ?", enrollmentIDs).
		Find(&enrollments).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}
	byID := make(map[uuid.UUID]model.StudentEnrollment, len(enrollments))
	for i := range enrollments {
		byID[enrollments[i].StudentEnrollmentID] = enrollments[i]
	}

	items := make([]DueSoonItem, 0, len(installments))
	for i := range installments {
		items = append(items, DueSoonItem{
			Installment: installments[i],
			Enrollment:  byID[installments[i].FeeInstallmentEnrollmentID],
		})
	}
	return items, nil
}

// =========================================================
// REMINDER HAND-OFF — dispatch eksternal, per item
// =========================================================

// ReminderDispatcher adalah kolaborator eksternal (WA/SMS/email service).
// Backend ini tidak pernah mengirim pesan sendiri.
type ReminderDispatcher interface {
	DispatchInstallmentReminder(ctx context.Context, item DueSoonItem) error
}

// LogReminderDispatcher: default no-delivery, hanya log (dipakai kalau
// service pengirim belum dikonfigurasi).
type LogReminderDispatcher struct{}

func (LogReminderDispatcher) DispatchInstallmentReminder(_ context.Context, item DueSoonItem) error {
	log.Printf("[REMINDER] installment=%s student=%s due=%s",
		item.Installment.FeeInstallmentID,
		item.Enrollment.StudentEnrollmentStudentName,
		item.Installment.FeeInstallmentDueDate.Format("2006-01-02"))
	return nil
}

type RemindFailure struct {
	FeeInstallmentID uuid.UUID `json:"fee_installment_id"`
	Reason           string    `json:"reason"`
}

type RemindSummary struct {
	TotalCandidates int             `json:"total_candidates"`
	Sent            int             `json:"sent"`
	Failed          int             `json:"failed"`
	Failures        []RemindFailure `json:"failures,omitempty"`
}

// Remind memproses kandidat SATU-SATU; kegagalan satu item dicatat
// di summary dan TIDAK menghentikan sisanya.
func (s *DueSoonService) Remind(ctx context.Context, days int, today time.Time, dispatcher ReminderDispatcher) (*RemindSummary, error) {
	items, err := s.FindDueWithin(ctx, days, today)
	if err != nil {
		return nil, err
	}
	if dispatcher == nil {
		dispatcher = LogReminderDispatcher{}
	}

	summary := &RemindSummary{TotalCandidates: len(items)}
	for i := range items {
		if err := dispatcher.DispatchInstallmentReminder(ctx, items[i]); err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, RemindFailure{
				FeeInstallmentID: items[i].Installment.FeeInstallmentID,
				Reason:           err.Error(),
			})
			continue
		}
		summary.Sent++
	}
	return summary, nil
}
