// file: internals/features/finance/fees/controller/fee_installment_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
)

type FeeInstallmentHandler struct {
	DB       *gorm.DB
	Schedule *service.ScheduleService
}

/* =========================
   Generate schedule
   POST /enrollments/:id/generate-installments
========================= */

func (h *FeeInstallmentHandler) GenerateInstallments(c *fiber.Ctx) error {
	enrollmentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid enrollment id")
	}

	var in dto.GenerateInstallmentsDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	periodStart, err := helper.ParseDate(in.PeriodStart)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"period_start": {"invalid date"}})
	}
	periodEnd, err := helper.ParseDate(in.PeriodEnd)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"period_end": {"invalid date"}})
	}

	created, err := h.Schedule.Generate(c.UserContext(), service.GenerateScheduleInput{
		EnrollmentID:     enrollmentID,
		TotalAmountCents: in.TotalAmountCents,
		Count:            in.NumberOfInstallments,
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		Force:            in.Force,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonCreated(c, "installment schedule generated",
		dto.ToFeeInstallmentResponses(created, time.Now()))
}

/* =========================
   List (GET /fee-installments)
   Filter: enrollment_id | student_id, status, due_from/due_to
========================= */

func (h *FeeInstallmentHandler) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 200)
	now := time.Now()

	// Sorting whitelist
	allowedSort := map[string]string{
		"due_date":   "fee_installment_due_date",
		"created_at": "fee_installment_created_at",
		"amount_due": "fee_installment_amount_due_cents",
		"title":      "fee_installment_title",
	}
	col, ok := allowedSort[strings.ToLower(strings.TrimSpace(c.Query("sort_by", "due_date")))]
	if !ok {
		col = allowedSort["due_date"]
	}
	dir := "ASC"
	if strings.EqualFold(strings.TrimSpace(c.Query("order")), "desc") {
		dir = "DESC"
	}

	q := h.DB.WithContext(c.UserContext()).Model(&model.FeeInstallment{})

	if id, ok := helper.ParseUUIDQuery(c, "enrollment_id"); ok {
		q = q.Where("fee_installment_enrollment_id = ?", id)
	} else if sid, ok := helper.ParseUUIDQuery(c, "student_id"); ok {
		// semua enrollment milik si siswa
		sub := h.DB.Model(&model.StudentEnrollment{}).
			Select("student_enrollment_id").
			Where("student_enrollment_student_id = ?", sid)
		q = q.Where("fee_installment_enrollment_id IN (?)", sub)
	}

	// Status derived → terjemahkan ke kondisi SQL yang ekuivalen
	// dengan DeriveStatus supaya pagination tetap benar.
	switch strings.ToLower(strings.TrimSpace(c.Query("status"))) {
	case "paid":
		q = q.Where("fee_installment_amount_paid_cents >= fee_installment_amount_due_cents")
	case "overdue":
		q = q.Where("fee_installment_amount_paid_cents < fee_installment_amount_due_cents").
			Where("fee_installment_due_date < ?", startOfDay(now))
	case "partial":
		q = q.Where("fee_installment_amount_paid_cents > 0").
			Where("fee_installment_amount_paid_cents < fee_installment_amount_due_cents").
			Where("fee_installment_due_date >= ?", startOfDay(now))
	case "pending":
		q = q.Where("fee_installment_amount_paid_cents = 0").
			Where("fee_installment_due_date >= ?", startOfDay(now))
	}

	if v := strings.TrimSpace(c.Query("due_from")); v != "" {
		if t, err := helper.ParseDate(v); err == nil {
			q = q.Where("fee_installment_due_date >= ?", t)
		}
	}
	if v := strings.TrimSpace(c.Query("due_to")); v != "" {
		if t, err := helper.ParseDate(v); err == nil {
			q = q.Where("fee_installment_due_date < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.FeeInstallment
	if err := q.Order(col + " " + dir).
		Order("fee_installment_id ASC").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "List fee installments",
		dto.ToFeeInstallmentResponses(list, now),
		helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

/* =========================
   Detail (GET /fee-installments/:id)
========================= */

func (h *FeeInstallmentHandler) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var m model.FeeInstallment
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "fee_installment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee installment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToFeeInstallmentResponse(m, time.Now()))
}

/* =========================
   Create manual (POST /fee-installments)
========================= */

func (h *FeeInstallmentHandler) Create(c *fiber.Ctx) error {
	var in dto.FeeInstallmentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	dueDate, err := helper.ParseDate(in.FeeInstallmentDueDate)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"fee_installment_due_date": {"invalid date"}})
	}

	var exists int64
	if err := h.DB.Model(&model.StudentEnrollment{}).
		Where("student_enrollment_id = ?", in.FeeInstallmentEnrollmentID).
		Count(&exists).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if exists == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "enrollment not found")
	}

	m := model.FeeInstallment{
		FeeInstallmentEnrollmentID:   in.FeeInstallmentEnrollmentID,
		FeeInstallmentTitle:          in.FeeInstallmentTitle,
		FeeInstallmentAmountDueCents: in.FeeInstallmentAmountDueCents,
		FeeInstallmentDueDate:        dueDate,
		FeeInstallmentNotes:          in.FeeInstallmentNotes,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "created", dto.ToFeeInstallmentResponse(m, time.Now()))
}

/* =========================
   Update (PUT /fee-installments/:id)
========================= */

func (h *FeeInstallmentHandler) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.FeeInstallmentUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var dueDate *time.Time
	if in.FeeInstallmentDueDate != nil {
		t, err := helper.ParseDate(*in.FeeInstallmentDueDate)
		if err != nil {
			return helper.JsonValidationError(c, map[string][]string{"fee_installment_due_date": {"invalid date"}})
		}
		dueDate = &t
	}

	var m model.FeeInstallment
	txErr := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		// lock: amount_due tidak boleh turun di bawah agregat paid
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&m, "fee_installment_id = ?", id).Error; err != nil {
			return err
		}
		dto.ApplyFeeInstallmentUpdate(&m, in, dueDate)
		if m.FeeInstallmentAmountDueCents < m.FeeInstallmentAmountPaidCents {
			return fiber.NewError(fiber.StatusConflict,
				"amount_due cannot be lower than the amount already paid")
		}
		return tx.Save(&m).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee installment not found")
		}
		return helper.FromFiberError(c, txErr)
	}

	return helper.JsonUpdated(c, "updated", dto.ToFeeInstallmentResponse(m, time.Now()))
}

/* =========================
   Delete (soft) — DELETE /fee-installments/:id
   Ditolak selama masih ada pembayaran tercatat.
========================= */

func (h *FeeInstallmentHandler) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	txErr := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m model.FeeInstallment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&m, "fee_installment_id = ?", id).Error; err != nil {
			return err
		}
		if m.FeeInstallmentAmountPaidCents > 0 {
			return fiber.NewError(fiber.StatusConflict,
				"cannot delete installment with recorded payments — delete the payments first")
		}
		return tx.Delete(&m).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee installment not found")
		}
		return helper.FromFiberError(c, txErr)
	}

	return helper.JsonDeleted(c, "deleted", fiber.Map{"fee_installment_id": id})
}

/* =========================
   util
========================= */

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
