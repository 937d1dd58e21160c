package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/mattn/go-runewidth"

	"github.com/balkashynov/sendit/internal/models"
	"github.com/balkashynov/sendit/internal/parser"
	"github.com/balkashynov/sendit/internal/stats"
)

// shortID is the leading part of an id that is shown and accepted as a reference.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}

// relativeDay describes d relative to today, e.g. "yesterday" or "3 days ago".
func relativeDay(d models.Date, now time.Time) string {
	today := models.DateOf(now)
	switch today.DaysSince(d) {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	case -1:
		return "tomorrow"
	}
	return humanize.RelTime(d.In(time.UTC), today.In(time.UTC), "ago", "from now")
}

func formatDuration(minutes int) string {
	switch {
	case minutes <= 0:
		return "—"
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
	}
}

func psychDots(level int) string {
	level = models.ClampPsych(level)
	return strings.Repeat("●", level) + strings.Repeat("○", models.MaxPsych-level)
}

// formatClimb renders one climb on a single line, numbered from 1.
func formatClimb(i int, c models.Climb) string {
	line := fmt.Sprintf("%2d. %-4s %-7s x%-2d", i+1, c.Grade, c.Status(), c.AttemptCount())

	var extras []string
	if c.Color != "" {
		extras = append(extras, c.Color)
	}
	if c.Style != "" {
		extras = append(extras, c.Style)
	}
	if c.Notes != "" {
		extras = append(extras, fmt.Sprintf("%q", c.Notes))
	}
	if len(extras) > 0 {
		line += " " + strings.Join(extras, " · ")
	}
	return fmt.Sprintf("%s  [%s]", line, shortID(c.ID))
}

// formatSessionSummary is the compact "2/3 sent · 1 flash · top V7" line.
func formatSessionSummary(s models.Session) string {
	st := stats.SessionSummary(s)
	if st.Climbs == 0 {
		return "no climbs logged"
	}
	parts := []string{fmt.Sprintf("%d/%d sent", st.Sends, st.Climbs)}
	if st.Flashes > 0 {
		parts = append(parts, english.Plural(st.Flashes, "flash", "flashes"))
	}
	if st.Highest.Valid() {
		parts = append(parts, "top "+st.Highest.String())
	}
	return strings.Join(parts, " · ")
}

func writeSessionDetail(w io.Writer, s models.Session, now time.Time) {
	fmt.Fprintf(w, "Session %s · %s (%s)\n", shortID(s.ID), parser.FormatSessionDate(s.Date, now), relativeDay(s.Date, now))
	if s.GymName != "" {
		fmt.Fprintf(w, "  Gym:      %s\n", s.GymName)
	}
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(s.Duration))
	fmt.Fprintf(w, "  Energy:   %s → %s\n", s.EnergyBefore, s.EnergyAfter)
	fmt.Fprintf(w, "  Skin:     %s\n", s.SkinCondition)
	fmt.Fprintf(w, "  Psych:    %s %d/%d\n", psychDots(s.PsychLevel), models.ClampPsych(s.PsychLevel), models.MaxPsych)
	fmt.Fprintf(w, "  Summary:  %s\n", formatSessionSummary(s))

	if len(s.Climbs) > 0 {
		fmt.Fprintln(w, "\nClimbs:")
		for i, c := range s.Climbs {
			fmt.Fprintf(w, "  %s\n", formatClimb(i, c))
		}
	}
	if s.Notes != "" {
		fmt.Fprintf(w, "\nNotes: %s\n", s.Notes)
	}
	if s.Goals != "" {
		fmt.Fprintf(w, "Next focus: %s\n", s.Goals)
	}
}

// writeSessionTable prints sessions one per row, in the order given.
func writeSessionTable(w io.Writer, sessions []models.Session, now time.Time) {
	fmt.Fprintf(w, "%-8s  %-16s  %-20s  %-6s  %-5s  %-6s  %s\n", "ID", "DATE", "GYM", "SENDS", "TOP", "TIME", "WHEN")
	fmt.Fprintln(w, strings.Repeat("-", 82))
	for _, s := range sessions {
		st := stats.SessionSummary(s)
		fmt.Fprintf(w, "%-8s  %s  %s  %-6s  %-5s  %-6s  %s\n",
			shortID(s.ID),
			padRight(parser.FormatSessionDate(s.Date, now), 16),
			padRight(s.GymName, 20),
			fmt.Sprintf("%d/%d", st.Sends, st.Climbs),
			st.Highest,
			formatDuration(s.Duration),
			relativeDay(s.Date, now))
	}
}
