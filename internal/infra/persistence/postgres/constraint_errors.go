package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether err is a unique-key
// violation, via GORM's translated error or the raw PostgreSQL message.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505") // PostgreSQL unique_violation error code
}

// violatesColumn reports whether the violation names the given column,
// relying on PostgreSQL including the index name in the message.
func violatesColumn(err error, column string) bool {
	return strings.Contains(strings.ToLower(err.Error()), column)
}
