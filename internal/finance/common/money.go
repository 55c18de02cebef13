package common

import "fmt"

// Money is a monetary amount in cents. The store keeps it as INTEGER,
// which keeps ledger arithmetic exact.
type Money int64

// String formats the amount as dollars with two decimal places.
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}
