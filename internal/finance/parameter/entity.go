// Package parameter stores named application settings such as the
// payment account used when paying a bill.
package parameter

import (
	"time"

	"go.ledgerline.dev/internal/common/repository"
)

// Parameter is a single named setting
type Parameter struct {
	ParameterID    int64
	ParameterName  string
	ParameterValue string
	Active         bool
	DateAdded      time.Time
	DateUpdated    time.Time
}

// Validate checks field-level constraints.
func (p *Parameter) Validate() *repository.ConstraintViolation {
	v := &repository.ConstraintViolation{}

	if p.ParameterName == "" {
		v.Add("parameterName", "Parameter name is required")
	} else if len(p.ParameterName) > 50 {
		v.Add("parameterName", "Parameter name must be at most 50 characters")
	}

	if p.ParameterValue == "" {
		v.Add("parameterValue", "Parameter value is required")
	} else if len(p.ParameterValue) > 50 {
		v.Add("parameterValue", "Parameter value must be at most 50 characters")
	}

	if len(v.Violations) == 0 {
		return nil
	}
	return v
}
