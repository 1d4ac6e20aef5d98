// file: internals/helpers/dberr.go
package helper

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// IsUniqueViolation mendeteksi pelanggaran unique constraint.
// Cek pq.Error dulu, lalu string fallback (kompatibel untuk lib/pq & pgx yang dibungkus,
// juga sqlite di test).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate key") ||
		strings.Contains(lc, "unique constraint") ||
		strings.Contains(lc, "unique failed")
}
