// file: internals/features/finance/fees/service/lock.go
package service

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate menambahkan SELECT ... FOR UPDATE (postgres).
// sqlite (store test, single connection) tidak kenal row lock dan
// menolak sintaksnya — write di sana sudah serial, jadi no-op.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
