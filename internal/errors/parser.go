package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// The database unique indexes are the actual source of truth for slug,
// SKU and order-number uniqueness; application-level pre-checks are
// advisory. The helpers below classify driver failures so the services
// can catch a constraint violation and retry with a fresh identifier.
//
// Both postgres ("duplicate key value violates unique constraint
// \"idx_products_slug\"") and the sqlite test driver ("UNIQUE constraint
// failed: products.slug") are recognized.

// IsNotFound reports whether err is a gorm record-not-found
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey reports whether err is a unique-constraint violation
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// IsDuplicateKeyOn reports whether err is a unique-constraint violation
// involving the named column (e.g. "slug", "sku", "order_number")
func IsDuplicateKeyOn(err error, column string) bool {
	if !IsDuplicateKey(err) {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(column))
}

// IsForeignKeyViolation reports whether err is a FK constraint violation
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint")
}
