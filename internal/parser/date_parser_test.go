package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/sendit/internal/models"
)

var now = time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)

func TestParseSessionDate(t *testing.T) {
	tests := []struct {
		input string
		want  models.Date
	}{
		{"", models.Date{Year: 2026, Month: time.October, Day: 17}},
		{"Today", models.Date{Year: 2026, Month: time.October, Day: 17}},
		{"yesterday", models.Date{Year: 2026, Month: time.October, Day: 16}},
		{"3 days ago", models.Date{Year: 2026, Month: time.October, Day: 14}},
		{"1 day ago", models.Date{Year: 2026, Month: time.October, Day: 16}},
		{"20d ago", models.Date{Year: 2026, Month: time.September, Day: 27}},
		{"05/01/2026", models.Date{Year: 2026, Month: time.January, Day: 5}},
		{"2025-12-31", models.Date{Year: 2025, Month: time.December, Day: 31}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSessionDate(tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSessionDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"31/02/2026", "13/13/2026", "next week", "2026-13-01", "99999 days ago"} {
		_, err := ParseSessionDate(input, now)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatSessionDate(t *testing.T) {
	assert.Equal(t, "Sat, Oct 17", FormatSessionDate(models.Date{Year: 2026, Month: time.October, Day: 17}, now))
	assert.Equal(t, "Wed, Dec 31 2025", FormatSessionDate(models.Date{Year: 2025, Month: time.December, Day: 31}, now))
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "today", FormatCountdown(0))
	assert.Equal(t, "tomorrow", FormatCountdown(1))
	assert.Equal(t, "28 days out", FormatCountdown(28))
	assert.Equal(t, "1 day ago", FormatCountdown(-1))
	assert.Equal(t, "2 days ago", FormatCountdown(-2))
}

func TestParseMinutes(t *testing.T) {
	assert.Equal(t, 90, ParseMinutes("90"))
	assert.Equal(t, 45, ParseMinutes(" 45min "))
	assert.Equal(t, 30, ParseMinutes("30m"))
	assert.Equal(t, 0, ParseMinutes("an hour"))
	assert.Equal(t, 0, ParseMinutes("-20"))
	assert.Equal(t, 0, ParseMinutes(""))
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 4, ParseCount("4", 3))
	assert.Equal(t, 3, ParseCount("0", 3))
	assert.Equal(t, 3, ParseCount("lots", 3))
}
