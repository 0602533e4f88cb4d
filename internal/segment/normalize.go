package segment

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts lists the accepted input formats for the last-seen column,
// tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// CleanPercent parses a percentage value such as "72.5%" or " 80 " into a
// number. Percent signs are removed wherever they appear. Returns nil when
// the value is missing or does not parse; nil is never conflated with zero.
func CleanPercent(raw string) *float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, "%", ""))
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// ParseDate parses a last-seen value in any supported layout and truncates
// it to a calendar date. Returns nil when the value is missing or
// unparseable.
func ParseDate(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			date := dateOnly(parsed)
			return &date
		}
	}
	return nil
}

// DaysBetween returns the calendar-day difference to - from. The result is
// negative when from lies after to; callers decide what a future last-seen
// date means.
func DaysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FullName joins name parts with a single space, dropping empty parts.
func FullName(first, last string) string {
	parts := make([]string, 0, 2)
	if f := strings.TrimSpace(first); f != "" {
		parts = append(parts, f)
	}
	if l := strings.TrimSpace(last); l != "" {
		parts = append(parts, l)
	}
	return strings.Join(parts, " ")
}

// dismissiveBarriers are reported values that mean "no barrier".
var dismissiveBarriers = map[string]bool{
	"":     true,
	"none": true,
	"no":   true,
}

// HasBarrier reports whether the barriers text names a real blocker.
// Comparison is case-insensitive after trimming.
func HasBarrier(raw string) bool {
	return !dismissiveBarriers[strings.ToLower(strings.TrimSpace(raw))]
}
