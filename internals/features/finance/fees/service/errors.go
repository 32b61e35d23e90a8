// file: internals/features/finance/fees/service/errors.go
package service

import (
	"errors"
	"strings"
)

// =========================================================
// ERROR TAXONOMY
// =========================================================
//
// validation/conflict → balik sinkron ke caller dengan detail field;
// concurrency/persistence → transaksi di-rollback, agregat tidak
// pernah terlihat setengah-update.

// ValidationError: input tidak valid (count/amount/date/reason kosong).
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{
		Message: msg,
		Fields:  map[string][]string{field: {msg}},
	}
}

// ConflictError: state menolak operasi (schedule sudah ada, overpayment).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError: resource tidak ditemukan / sudah terhapus.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// ConcurrencyError: lock contention / versi basi.
type ConcurrencyError struct {
	Message string
}

func (e *ConcurrencyError) Error() string { return e.Message }

// PersistenceError: kegagalan transaksi/storage (wrap error asli).
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "persistence failure: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// =========================================================
// HELPERS
// =========================================================

func IsValidation(err error) bool {
	var t *ValidationError
	return errors.As(err, &t)
}

func IsConflict(err error) bool {
	var t *ConflictError
	return errors.As(err, &t)
}

func IsNotFound(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}

func IsConcurrency(err error) bool {
	var t *ConcurrencyError
	return errors.As(err, &t)
}

// isUniqueViolation: deteksi pelanggaran unique constraint lintas driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
