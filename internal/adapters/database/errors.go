package database

import (
	"errors"
	"fmt"
	"strings"
	"yatube/internal/common"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the shared sentinel errors.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, common.ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation catches driver errors that were not translated by gorm.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
