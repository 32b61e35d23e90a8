// file: internals/features/finance/fees/controller/student_ledger_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
)

type StudentLedgerHandler struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

/* =========================
   Ledger per enrollment
   GET /student-ledgers/enrollment/:id
========================= */

func (h *StudentLedgerHandler) GetForEnrollment(c *fiber.Ctx) error {
	enrollmentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid enrollment id")
	}

	entries, summary, svcErr := h.Ledger.ListForEnrollment(c.UserContext(), enrollmentID)
	if svcErr != nil {
		return writeServiceError(c, svcErr)
	}

	return helper.JsonOK(c, "ok", dto.StudentLedgerResponse{
		Entries: dto.ToLedgerEntryResponses(entries),
		Summary: summary,
	})
}

/* =========================
   Append entry
   POST /student-ledgers/enrollment/:id
========================= */

func (h *StudentLedgerHandler) AppendEntry(c *fiber.Ctx) error {
	enrollmentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid enrollment id")
	}

	var in dto.LedgerEntryAppendDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	txDate, err := helper.ParseDate(in.StudentLedgerEntryTransactionDate)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"transaction_date": {"invalid date"}})
	}

	createdBy, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	entry, svcErr := h.Ledger.Append(c.UserContext(), service.AppendEntryInput{
		EnrollmentID:    enrollmentID,
		Type:            model.LedgerTransactionType(in.StudentLedgerEntryType),
		AmountCents:     in.StudentLedgerEntryAmountCents,
		TransactionDate: txDate,
		ReferenceNumber: in.StudentLedgerEntryReferenceNumber,
		PaymentMethod:   in.StudentLedgerEntryPaymentMethod,
		CreatedBy:       createdBy,
	})
	if svcErr != nil {
		return writeServiceError(c, svcErr)
	}

	return helper.JsonCreated(c, "ledger entry recorded", dto.ToLedgerEntryResponse(*entry))
}

/* =========================
   Delete entry (logical, alasan wajib)
   DELETE /ledger-entries/:id
========================= */

func (h *StudentLedgerHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.LedgerEntryDeleteDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	deletedBy, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	entry, svcErr := h.Ledger.Delete(c.UserContext(), id, in.Reason, deletedBy)
	if svcErr != nil {
		return writeServiceError(c, svcErr)
	}

	return helper.JsonDeleted(c, "ledger entry deleted", dto.ToLedgerEntryResponse(*entry))
}
