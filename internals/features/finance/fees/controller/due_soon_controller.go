// file: internals/features/finance/fees/controller/due_soon_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
)

type DueSoonHandler struct {
	DueSoon    *service.DueSoonService
	Dispatcher service.ReminderDispatcher
}

/* =========================
   GET /fee-installments/due-soon?days=N
========================= */

func (h *DueSoonHandler) List(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)

	items, err := h.DueSoon.FindDueWithin(c.UserContext(), days, time.Now())
	if err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonOK(c, "installments due soon",
		dto.ToDueSoonItemResponses(items, time.Now()))
}

/* =========================
   POST /fee-installments/due-soon/remind {days}
   Hand-off ke dispatcher eksternal; summary per item, gagal satu
   tidak menghentikan sisanya.
========================= */

func (h *DueSoonHandler) Remind(c *fiber.Ctx) error {
	var in dto.RemindDueSoonDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if in.Days == 0 {
		in.Days = 7
	}

	summary, err := h.DueSoon.Remind(c.UserContext(), in.Days, time.Now(), h.Dispatcher)
	if err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonOK(c, "reminder batch processed", summary)
}
