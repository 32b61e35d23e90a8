// file: internals/features/finance/fees/controller/checkout_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
)

type CheckoutHandler struct {
	Checkout *service.CheckoutService
}

/* =========================
   POST /fee-installments/:id/checkout
   Snap token untuk sisa tagihan installment.
========================= */

func (h *CheckoutHandler) CreateSnapToken(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.CheckoutCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	orderID, token, svcErr := h.Checkout.CreateSnapToken(c.UserContext(), id, in.PayerName, in.PayerEmail)
	if svcErr != nil {
		return writeServiceError(c, svcErr)
	}

	return helper.JsonCreated(c, "snap transaction created", dto.CheckoutResponse{
		OrderID:   orderID,
		SnapToken: token,
	})
}

/* =========================
   POST /webhooks/midtrans
   Notifikasi status — selalu 200 supaya midtrans tidak retry badai;
   error dicatat di log.
========================= */

func (h *CheckoutHandler) Webhook(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	if err := h.Checkout.HandleWebhook(c.UserContext(), body); err != nil {
		log.Printf("[ERROR] midtrans webhook: %v", err)
	}
	return helper.JsonOK(c, "ok", nil)
}
