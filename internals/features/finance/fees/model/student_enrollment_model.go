// file: internals/features/finance/fees/model/student_enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// =========================================================
// MODEL — enrollment context (read-only di subsistem fees)
// =========================================================
//
// Enrollment (pendaftaran siswa per tahun ajaran) dimiliki modul
// akademik; subsistem fees hanya membaca identitas + field display
// untuk join due-soon / statement. Jangan mutasi dari sini.

type StudentEnrollment struct {
	// PK
	StudentEnrollmentID uuid.UUID `gorm:"column:student_enrollment_id;type:uuid;primaryKey" json:"student_enrollment_id"`

	// FK → students / schools (modul lain)
	StudentEnrollmentStudentID uuid.UUID `gorm:"column:student_enrollment_student_id;type:uuid;not null;index" json:"student_enrollment_student_id"`
	StudentEnrollmentSchoolID  uuid.UUID `gorm:"column:student_enrollment_school_id;type:uuid;not null;index" json:"student_enrollment_school_id"`

	// Snapshot display (denormalized untuk tampilan & reminder)
	StudentEnrollmentStudentName   string  `gorm:"column:student_enrollment_student_name;type:varchar(120);not null" json:"student_enrollment_student_name"`
	StudentEnrollmentSchoolName    string  `gorm:"column:student_enrollment_school_name;type:varchar(120);not null" json:"student_enrollment_school_name"`
	StudentEnrollmentAcademicYear  string  `gorm:"column:student_enrollment_academic_year;type:varchar(20);not null" json:"student_enrollment_academic_year"`
	StudentEnrollmentGradeName     *string `gorm:"column:student_enrollment_grade_name;type:varchar(60)" json:"student_enrollment_grade_name,omitempty"`
	StudentEnrollmentClassroomName *string `gorm:"column:student_enrollment_classroom_name;type:varchar(60)" json:"student_enrollment_classroom_name,omitempty"`
	StudentEnrollmentGuardianPhone *string `gorm:"column:student_enrollment_guardian_phone;type:varchar(30)" json:"student_enrollment_guardian_phone,omitempty"`

	StudentEnrollmentCreatedAt time.Time `gorm:"column:student_enrollment_created_at;not null" json:"student_enrollment_created_at"`
	StudentEnrollmentUpdatedAt time.Time `gorm:"column:student_enrollment_updated_at;not null" json:"student_enrollment_updated_at"`
}

func (StudentEnrollment) TableName() string {
	return "student_enrollments"
}
