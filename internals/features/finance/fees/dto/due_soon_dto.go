// file: internals/features/finance/fees/dto/due_soon_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/fees/service"
)

////////////////////////////////////////////////////////////////////////////////
// DUE SOON — DTO (installment + konteks enrollment untuk display/reminder)
////////////////////////////////////////////////////////////////////////////////

type DueSoonItemResponse struct {
	Installment FeeInstallmentResponse `json:"installment"`

	StudentEnrollmentID uuid.UUID `json:"student_enrollment_id"`
	StudentID           uuid.UUID `json:"student_id"`
	StudentName         string    `json:"student_name"`
	SchoolID            uuid.UUID `json:"school_id"`
	SchoolName          string    `json:"school_name"`
	AcademicYear        string    `json:"academic_year"`
	GradeName           *string   `json:"grade_name,omitempty"`
	ClassroomName       *string   `json:"classroom_name,omitempty"`
	GuardianPhone       *string   `json:"guardian_phone,omitempty"`
}

type RemindDueSoonDTO struct {
	Days int `json:"days" validate:"min=0,max=90"`
}

func ToDueSoonItemResponse(item service.DueSoonItem, today time.Time) DueSoonItemResponse {
	return DueSoonItemResponse{
		Installment:         ToFeeInstallmentResponse(item.Installment, today),
		StudentEnrollmentID: item.Enrollment.StudentEnrollmentID,
		StudentID:           item.Enrollment.StudentEnrollmentStudentID,
		StudentName:         item.Enrollment.StudentEnrollmentStudentName,
		SchoolID:            item.Enrollment.StudentEnrollmentSchoolID,
		SchoolName:          item.Enrollment.StudentEnrollmentSchoolName,
		AcademicYear:        item.Enrollment.StudentEnrollmentAcademicYear,
		GradeName:           item.Enrollment.StudentEnrollmentGradeName,
		ClassroomName:       item.Enrollment.StudentEnrollmentClassroomName,
		GuardianPhone:       item.Enrollment.StudentEnrollmentGuardianPhone,
	}
}

func ToDueSoonItemResponses(items []service.DueSoonItem, today time.Time) []DueSoonItemResponse {
	out := make([]DueSoonItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToDueSoonItemResponse(it, today))
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
// CHECKOUT — DTO
////////////////////////////////////////////////////////////////////////////////

type CheckoutCreateDTO struct {
	PayerName  string `json:"payer_name" validate:"required,max=120"`
	PayerEmail string `json:"payer_email" validate:"required,email"`
}

type CheckoutResponse struct {
	OrderID   string `json:"order_id"`
	SnapToken string `json:"snap_token"`
}
