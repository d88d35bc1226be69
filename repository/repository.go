// Package repository provides the GORM-backed implementations of the store
// interfaces defined in services. Every write that pairs an approval flip
// with a document move runs inside one transaction with conditional updates,
// so concurrent deciders race on the database row, not in application code.
package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"document-approval-api/errs"
)

// wrap translates driver errors into the application taxonomy. Missing rows
// become ErrNotFound; anything else is an infrastructure failure whose detail
// belongs in the log, not the response.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return fmt.Errorf("%w: %v", errs.ErrInfrastructure, err)
}
