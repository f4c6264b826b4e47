// Package pagination converts the from/size query contract into the store's
// native offset/limit paging. from is an absolute offset, not a page number.
package pagination

import (
	"shareit/pkg/httperr"

	"gorm.io/gorm"
)

type Page struct {
	From int
	Size int
}

// FromSize validates the pair; from must be >= 0 and size >= 1.
func FromSize(from, size int) (Page, error) {
	if from < 0 || size < 1 {
		return Page{}, httperr.BadRequest("not positive value in pagination")
	}
	return Page{From: from, Size: size}, nil
}

// Scope applies the page as a gorm scope.
func (p Page) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.From).Limit(p.Size)
}
