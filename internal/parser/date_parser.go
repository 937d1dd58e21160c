package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"

	"github.com/balkashynov/sendit/internal/models"
)

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	daysAgoRegex   = regexp.MustCompile(`^(\d+)\s*(d|day|days)\s+ago$`)
)

// ParseSessionDate parses the day a session happened.
// Supported formats:
// - "" or "today"
// - "yesterday"
// - "N days ago" (e.g., "3 days ago", "1 day ago", "2d ago")
// - dd/mm/yyyy (e.g., "15/12/2025")
// - yyyy-mm-dd (e.g., "2025-12-15")
func ParseSessionDate(input string, now time.Time) (models.Date, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	today := models.DateOf(now)

	switch input {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	if d, err := models.ParseDate(input); err == nil {
		return d, nil
	}

	if d, err := parseSlashDate(input); err == nil {
		return d, nil
	}

	if matches := daysAgoRegex.FindStringSubmatch(input); len(matches) == 3 {
		n, err := strconv.Atoi(matches[1])
		if err != nil || n > 3650 {
			return models.Date{}, fmt.Errorf("days ago must be between 0 and 3650")
		}
		return today.AddDays(-n), nil
	}

	return models.Date{}, fmt.Errorf("invalid date format. Use: today, yesterday, N days ago, dd/mm/yyyy or yyyy-mm-dd")
}

// parseSlashDate parses dd/mm/yyyy format
func parseSlashDate(input string) (models.Date, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return models.Date{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return models.Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Rejects 31/02 and friends, which time.Date would normalise
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return models.Date{}, fmt.Errorf("invalid date")
	}
	return models.DateOf(t), nil
}

// FormatSessionDate formats a session date for display, e.g. "Sat, Oct 17".
// Dates outside the current year include the year.
func FormatSessionDate(d models.Date, now time.Time) string {
	t := d.In(time.UTC)
	if d.Year != now.Year() {
		return t.Format("Mon, Jan 2 2006")
	}
	return t.Format("Mon, Jan 2")
}

// FormatCountdown describes a day offset from today, e.g. "28 days out" or "2 days ago".
func FormatCountdown(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days < 0:
		return english.Plural(-days, "day", "days") + " ago"
	default:
		return english.Plural(days, "day", "days") + " out"
	}
}
