// file: internals/features/finance/fees/service/testdb_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolku_backend/internals/features/finance/fees/model"
)

// openTestDB: sqlite in-memory per test. MaxOpenConns=1 wajib —
// tiap koneksi baru ke :memory: adalah database kosong baru.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.StudentEnrollment{},
		&model.FeeInstallment{},
		&model.StudentFeePayment{},
		&model.StudentLedgerEntry{},
	))
	return db
}

func seedEnrollment(t *testing.T, db *gorm.DB) model.StudentEnrollment {
	t.Helper()

	now := time.Now()
	enr := model.StudentEnrollment{
		StudentEnrollmentID:           uuid.New(),
		StudentEnrollmentStudentID:    uuid.New(),
		StudentEnrollmentSchoolID:     uuid.New(),
		StudentEnrollmentStudentName:  "Ahmad Fauzi",
		StudentEnrollmentSchoolName:   "SD Harapan Bangsa",
		StudentEnrollmentAcademicYear: "2025/2026",
		StudentEnrollmentCreatedAt:    now,
		StudentEnrollmentUpdatedAt:    now,
	}
	require.NoError(t, db.Create(&enr).Error)
	return enr
}

func seedInstallment(t *testing.T, db *gorm.DB, enrollmentID uuid.UUID, dueCents, paidCents int64, dueDate time.Time) model.FeeInstallment {
	t.Helper()

	inst := model.FeeInstallment{
		FeeInstallmentEnrollmentID:    enrollmentID,
		FeeInstallmentTitle:           "SPP",
		FeeInstallmentAmountDueCents:  dueCents,
		FeeInstallmentAmountPaidCents: paidCents,
		FeeInstallmentDueDate:         dueDate,
	}
	require.NoError(t, db.Create(&inst).Error)
	return inst
}
