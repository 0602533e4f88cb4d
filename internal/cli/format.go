package cli

import (
	"strconv"
	"time"
)

// ValueMissing is rendered wherever a source value was absent or did not
// parse. It keeps unknowns visibly distinct from zero.
const ValueMissing = "-"

// FormatDays renders a day count, or the missing marker.
func FormatDays(days *int) string {
	if days == nil {
		return ValueMissing
	}
	return strconv.Itoa(*days)
}

// FormatPercent renders a percentage with a trailing sign, or the missing
// marker. Whole numbers drop the decimal.
func FormatPercent(value *float64) string {
	if value == nil {
		return ValueMissing
	}
	return strconv.FormatFloat(*value, 'f', -1, 64) + "%"
}

// FormatScore renders a numeric score without a percent sign, or the
// missing marker.
func FormatScore(value *float64) string {
	if value == nil {
		return ValueMissing
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

// FormatDate renders a calendar date, or the missing marker.
func FormatDate(date *time.Time) string {
	if date == nil {
		return ValueMissing
	}
	return date.Format("2006-01-02")
}
