// Package threshold classifies a signed variance into a severity using a pair
// of absolute cutoffs.
package threshold

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
)

type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Rank orders severities so that critical sorts above warning above ok.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// Policy holds the yellow (warning) and red (critical) cutoffs. Both apply to
// the absolute value of a variance.
type Policy struct {
	Yellow decimal.Decimal
	Red    decimal.Decimal
}

func NewPolicy(yellow, red decimal.Decimal) (Policy, error) {
	if !yellow.IsPositive() {
		return Policy{}, &apperr.ValidationError{Field: "yellow", Message: "must be greater than zero"}
	}

	if !red.GreaterThan(yellow) {
		return Policy{}, &apperr.ValidationError{Field: "red", Message: "must be greater than yellow"}
	}

	return Policy{Yellow: yellow, Red: red}, nil
}

func (p Policy) Classify(variance decimal.Decimal) Severity {
	v := variance.Abs()

	switch {
	case v.GreaterThanOrEqual(p.Red):
		return SeverityCritical
	case v.GreaterThanOrEqual(p.Yellow):
		return SeverityWarning
	default:
		return SeverityOK
	}
}

// Set groups the cutoffs used for monetary and volume variances.
type Set struct {
	Money  Policy
	Volume Policy
}
