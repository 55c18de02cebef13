// Package category manages the labels that classify transactions.
package category

import (
	"regexp"
	"time"

	"go.ledgerline.dev/internal/common/repository"
)

var categoryNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Category labels transactions for reporting
type Category struct {
	CategoryID   int64
	CategoryName string
	Active       bool
	DateAdded    time.Time
	DateUpdated  time.Time
}

// Validate checks field-level constraints.
func (c *Category) Validate() *repository.ConstraintViolation {
	v := &repository.ConstraintViolation{}

	if c.CategoryName == "" {
		v.Add("categoryName", "Category name is required")
	} else if len(c.CategoryName) > 50 {
		v.Add("categoryName", "Category name must be at most 50 characters")
	} else if !categoryNamePattern.MatchString(c.CategoryName) {
		v.Add("categoryName", "Category name must be lowercase alphanumeric with underscores or hyphens")
	}

	if len(v.Violations) == 0 {
		return nil
	}
	return v
}
