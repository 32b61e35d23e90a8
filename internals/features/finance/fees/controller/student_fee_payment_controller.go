// file: internals/features/finance/fees/controller/student_fee_payment_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
)

type StudentFeePaymentHandler struct {
	DB       *gorm.DB
	Payments *service.PaymentService
}

/* =========================
   List (GET /student-fee-payments?fee_installment_id=)
========================= */

func (h *StudentFeePaymentHandler) List(c *fiber.Ctx) error {
	installmentID, ok := helper.ParseUUIDQuery(c, "fee_installment_id")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "fee_installment_id is required")
	}

	pg := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.UserContext()).
		Model(&model.StudentFeePayment{}).
		Where("student_fee_payment_installment_id = ?", installmentID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.StudentFeePayment
	if err := q.Order("student_fee_payment_date ASC").
		Order("student_fee_payment_created_at ASC").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "List student fee payments",
		dto.ToStudentFeePaymentResponses(list),
		helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

/* =========================
   Create (POST /student-fee-payments)
========================= */

func (h *StudentFeePaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.StudentFeePaymentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	payDate, err := helper.ParseDate(in.StudentFeePaymentDate)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"student_fee_payment_date": {"invalid date"}})
	}

	// kasir/staff yang mencatat (audit)
	receivedBy, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	payment, inst, svcErr := h.Payments.Record(c.UserContext(), service.RecordPaymentInput{
		InstallmentID: in.StudentFeePaymentInstallmentID,
		AmountCents:   in.StudentFeePaymentAmountCents,
		Date:          payDate,
		MethodID:      in.StudentFeePaymentMethodID,
		MethodLabel:   in.StudentFeePaymentMethodLabel,
		Notes:         in.StudentFeePaymentNotes,
		ReceivedBy:    &receivedBy,
	})
	if svcErr != nil {
		return writeServiceError(c, svcErr)
	}

	return helper.JsonCreated(c, "payment recorded", fiber.Map{
		"payment":     dto.ToStudentFeePaymentResponse(*payment),
		"installment": dto.ToFeeInstallmentResponse(*inst, time.Now()),
	})
}

/* =========================
   Update (PUT /student-fee-payments/:id)
========================= */

func (h *StudentFeePaymentHandler) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.StudentFeePaymentUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var payDate *time.Time
	if in.StudentFeePaymentDate != nil {
		t, err := helper.ParseDate(*in.StudentFeePaymentDate)
		if err != nil {
			return helper.JsonValidationError(c, map[string][]string{"student_fee_payment_date": {"invalid date"}})
		}
		payDate = &t
	}

	payment, inst, svcErr := h.Payments.Update(c.UserContext(), id, service.UpdatePaymentInput{
		AmountCents: in.StudentFeePaymentAmountCents,
		Date:        payDate,
		MethodID:    in.StudentFeePaymentMethodID,
		MethodLabel: in.StudentFeePaymentMethodLabel,
		Notes:       in.StudentFeePaymentNotes,
	})
	if svcErr != nil {
		return writeServiceError(c, svcErr)
	}

	return helper.JsonUpdated(c, "payment updated", fiber.Map{
		"payment":     dto.ToStudentFeePaymentResponse(*payment),
		"installment": dto.ToFeeInstallmentResponse(*inst, time.Now()),
	})
}

/* =========================
   Delete (soft) — DELETE /student-fee-payments/:id
========================= */

func (h *StudentFeePaymentHandler) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	inst, svcErr := h.Payments.Delete(c.UserContext(), id)
	if svcErr != nil {
		return writeServiceError(c, svcErr)
	}

	return helper.JsonDeleted(c, "payment deleted", fiber.Map{
		"student_fee_payment_id": id,
		"installment":            dto.ToFeeInstallmentResponse(*inst, time.Now()),
	})
}
