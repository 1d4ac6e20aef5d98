// file: internals/helpers/lock.go
package helper

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockForUpdate menambahkan SELECT ... FOR UPDATE pada Postgres.
// SQLite (dipakai di test) tidak mengenal FOR UPDATE, tapi writer-nya
// memang serial, jadi aman di-skip.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
