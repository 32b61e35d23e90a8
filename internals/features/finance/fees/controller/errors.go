// file: internals/features/finance/fees/controller/errors.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
)

// writeServiceError memetakan taxonomy error service → response JSON:
// validation 422 (dengan field detail), conflict 409, not found 404,
// concurrency 409, sisanya 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return helper.JsonValidationError(c, verr.Fields)
	}

	var cerr *service.ConflictError
	if errors.As(err, &cerr) {
		return helper.JsonError(c, fiber.StatusConflict, cerr.Message)
	}

	var nerr *service.NotFoundError
	if errors.As(err, &nerr) {
		return helper.JsonError(c, fiber.StatusNotFound, nerr.Error())
	}

	var qerr *service.ConcurrencyError
	if errors.As(err, &qerr) {
		return helper.JsonError(c, fiber.StatusConflict, qerr.Message)
	}

	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}
