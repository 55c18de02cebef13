package common

import "time"

// DateLayout is the form business dates take in the store (day precision).
const DateLayout = "2006-01-02"

// FormatDate renders a business date for storage.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate reads a stored business date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
