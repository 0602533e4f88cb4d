package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPercent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{name: "plain number", raw: "72.5", want: floatPtr(72.5)},
		{name: "trailing percent", raw: "72.5%", want: floatPtr(72.5)},
		{name: "surrounding whitespace", raw: "  80 ", want: floatPtr(80)},
		{name: "percent then whitespace", raw: "65% ", want: floatPtr(65)},
		{name: "integer", raw: "100", want: floatPtr(100)},
		{name: "zero is a value", raw: "0", want: floatPtr(0)},
		{name: "zero percent", raw: "0%", want: floatPtr(0)},
		{name: "negative parses", raw: "-5", want: floatPtr(-5)},
		{name: "empty is unknown", raw: "", want: nil},
		{name: "whitespace only is unknown", raw: "   ", want: nil},
		{name: "text is unknown", raw: "n/a", want: nil},
		{name: "mixed text is unknown", raw: "80ish", want: nil},
		{name: "nan literal is unknown", raw: "NaN", want: nil},
		{name: "infinity is unknown", raw: "Inf", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanPercent(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 7, 22, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{name: "iso date", raw: "2025-07-22", want: &want},
		{name: "slash date", raw: "2025/07/22", want: &want},
		{name: "us date", raw: "07/22/2025", want: &want},
		{name: "us dashes", raw: "07-22-2025", want: &want},
		{name: "datetime truncates to date", raw: "2025-07-22 13:45:00", want: &want},
		{name: "iso datetime", raw: "2025-07-22T13:45:00", want: &want},
		{name: "surrounding whitespace", raw: " 2025-07-22 ", want: &want},
		{name: "empty is unknown", raw: "", want: nil},
		{name: "garbage is unknown", raw: "last Tuesday", want: nil},
		{name: "partial date is unknown", raw: "2025-07", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	ref := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		from time.Time
		want int
	}{
		{name: "same day", from: ref, want: 0},
		{name: "one day earlier", from: time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC), want: 1},
		{name: "time of day ignored", from: time.Date(2025, 8, 4, 23, 59, 0, 0, time.UTC), want: 1},
		{name: "three weeks earlier", from: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), want: 21},
		{name: "future date is negative", from: time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC), want: -3},
		{name: "across month boundary", from: time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.from, ref))
		})
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{name: "both parts", first: "Amara", last: "Diallo", want: "Amara Diallo"},
		{name: "first only", first: "Amara", last: "", want: "Amara"},
		{name: "last only", first: "", last: "Diallo", want: "Diallo"},
		{name: "both empty", first: "", last: "", want: ""},
		{name: "parts trimmed", first: " Amara ", last: " Diallo ", want: "Amara Diallo"},
		{name: "whitespace only part dropped", first: "  ", last: "Diallo", want: "Diallo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FullName(tt.first, tt.last))
		})
	}
}

func TestHasBarrier(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "", want: false},
		{raw: "   ", want: false},
		{raw: "none", want: false},
		{raw: "None", want: false},
		{raw: "NONE ", want: false},
		{raw: "no", want: false},
		{raw: " No ", want: false},
		{raw: "Needs laptop", want: true},
		{raw: "childcare", want: true},
		{raw: "no transport", want: true},
	}

	for _, tt := range tests {
		t.Run("value "+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, HasBarrier(tt.raw))
		})
	}
}
