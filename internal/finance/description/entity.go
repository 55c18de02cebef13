// Package description manages merchant and payee names attached to
// transactions.
package description

import (
	"regexp"
	"time"

	"go.ledgerline.dev/internal/common/repository"
)

var descriptionNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Description names the counterparty of a transaction
type Description struct {
	DescriptionID   int64
	DescriptionName string
	Active          bool
	DateAdded       time.Time
	DateUpdated     time.Time
}

// Validate checks field-level constraints.
func (d *Description) Validate() *repository.ConstraintViolation {
	v := &repository.ConstraintViolation{}

	if d.DescriptionName == "" {
		v.Add("descriptionName", "Description name is required")
	} else if len(d.DescriptionName) > 50 {
		v.Add("descriptionName", "Description name must be at most 50 characters")
	} else if !descriptionNamePattern.MatchString(d.DescriptionName) {
		v.Add("descriptionName", "Description name must be lowercase alphanumeric with underscores or hyphens")
	}

	if len(v.Violations) == 0 {
		return nil
	}
	return v
}
