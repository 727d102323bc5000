package data

import (
	"github.com/souvikmndl/ott-records/internal/validator"
)

const (
	// DefaultPage is used when the page query param is missing
	DefaultPage = 1
	// DefaultLimit is used when the limit query param is missing
	DefaultLimit = 10
	// MaxLimit caps the page size so a single request cannot pull the whole table
	MaxLimit = 100
	// MaxPage keeps the offset well inside int range
	MaxPage = 10_000_000
)

// Filters struct contains params for paginating results
type Filters struct {
	Page  int
	Limit int
}

// ValidateFilters checks whether filter values are set correctly
func ValidateFilters(v *validator.Validator, f Filters) {
	v.Check(f.Page > 0, "page", "must be greater than zero")
	v.Check(f.Page <= MaxPage, "page", "must be a maximum of 10 million")
	v.Check(f.Limit > 0, "limit", "must be greater than zero")
	v.Check(f.Limit <= MaxLimit, "limit", "must be a maximum of 100")
}

// limit returns the page size from filters
func (f Filters) limit() int {
	return f.Limit
}

// offset returns the number of rows to skip for pagination
func (f Filters) offset() int {
	return (f.Page - 1) * f.Limit
}
