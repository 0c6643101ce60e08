// Package repository implements the persistence ports over gorm and postgres.
package repository

import (
	"errors"
	"strings"

	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/repository"
	"gorm.io/gorm"
)

const defaultPerPage = 20

// normalizePage clamps pagination input to sane values.
func normalizePage(q repository.ListQuery) (page, perPage int) {
	page, perPage = q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = defaultPerPage
	}
	return page, perPage
}

// mapError converts gorm errors to the domain taxonomy so services never
// import gorm. Unmapped errors pass through untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	}
	// The postgres driver does not always surface gorm.ErrDuplicatedKey.
	if strings.Contains(err.Error(), "duplicate key value") {
		return domain.ErrAlreadyExists
	}
	return err
}
