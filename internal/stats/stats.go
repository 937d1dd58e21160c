// Package stats derives dashboard figures from a snapshot of sessions.
//
// Every function is pure: it reads its arguments, never mutates them, and
// takes the current time explicitly so results are reproducible.
package stats

import (
	"sort"
	"time"

	"github.com/balkashynov/sendit/internal/models"
)

const (
	// WeekWindowDays is how far back WeekSessions looks, today included.
	WeekWindowDays = 7
	// StreakLookbackDays bounds the Streak scan.
	StreakLookbackDays = 60
)

// WeekSessions returns the sessions dated from seven days ago through today.
// Sessions dated in the future are not counted.
func WeekSessions(sessions []models.Session, now time.Time) []models.Session {
	today := models.DateOf(now)
	weekAgo := today.AddDays(-WeekWindowDays)

	var week []models.Session
	for _, s := range sessions {
		if s.Date.Before(weekAgo) || s.Date.After(today) {
			continue
		}
		week = append(week, s)
	}
	return week
}

// Streak counts consecutive days with at least one session, walking back from
// today. Today without a session does not end the streak; the first empty day
// after today does.
func Streak(sessions []models.Session, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}

	days := make(map[models.Date]bool, len(sessions))
	for _, s := range sessions {
		days[s.Date] = true
	}

	today := models.DateOf(now)
	streak := 0
	for i := 0; i < StreakLookbackDays; i++ {
		if days[today.AddDays(-i)] {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// HighestSend returns the hardest grade ever sent, or models.NoGrade.
func HighestSend(sessions []models.Session) models.Grade {
	highest := models.NoGrade
	for _, s := range sessions {
		if g := highestIn(s.Climbs); g > highest {
			highest = g
		}
	}
	return highest
}

func highestIn(climbs []models.Climb) models.Grade {
	highest := models.NoGrade
	for _, c := range climbs {
		if c.Sent && c.Grade.Valid() && c.Grade > highest {
			highest = c.Grade
		}
	}
	return highest
}

// TotalSends counts climbs marked sent, not attempts.
func TotalSends(sessions []models.Session) int {
	total := 0
	for _, s := range sessions {
		for _, c := range s.Climbs {
			if c.Sent {
				total++
			}
		}
	}
	return total
}

// TotalAttempts sums attempts over every climb; each climb counts at least once.
func TotalAttempts(sessions []models.Session) int {
	total := 0
	for _, s := range sessions {
		for _, c := range s.Climbs {
			total += c.AttemptCount()
		}
	}
	return total
}

// Histogram holds the number of sends per grade, indexed by grade.
type Histogram [models.GradeCount]int

// GradeHistogram counts sent climbs at each grade.
func GradeHistogram(sessions []models.Session) Histogram {
	var h Histogram
	for _, s := range sessions {
		for _, c := range s.Climbs {
			if c.Sent && c.Grade.Valid() {
				h[c.Grade]++
			}
		}
	}
	return h
}

// Count returns the sends at grade g.
func (h Histogram) Count(g models.Grade) int {
	if !g.Valid() {
		return 0
	}
	return h[g]
}

// Max is the largest count, never less than one so it can divide bar heights.
func (h Histogram) Max() int {
	highest := 1
	for _, n := range h {
		if n > highest {
			highest = n
		}
	}
	return highest
}

// Total sums every bucket.
func (h Histogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// SessionStats is the one-line summary shown for a session.
type SessionStats struct {
	Sends   int
	Climbs  int
	Flashes int
	Highest models.Grade
}

// SessionSummary summarises a single session's climbs.
func SessionSummary(s models.Session) SessionStats {
	st := SessionStats{Climbs: len(s.Climbs), Highest: highestIn(s.Climbs)}
	for _, c := range s.Climbs {
		if c.Sent {
			st.Sends++
		}
		if c.Flash {
			st.Flashes++
		}
	}
	return st
}

// Progress measures this week's sessions against the weekly target.
type Progress struct {
	Count  int
	Target int
}

// Ratio is Count/Target capped at 1.
func (p Progress) Ratio() float64 {
	if p.Target <= 0 {
		return 1
	}
	r := float64(p.Count) / float64(p.Target)
	if r > 1 {
		return 1
	}
	return r
}

// Met reports whether the weekly target is reached.
func (p Progress) Met() bool {
	return p.Count >= p.Target
}

// WeeklyProgress compares WeekSessions against goals.SessionsPerWeek.
func WeeklyProgress(sessions []models.Session, goals models.Goals, now time.Time) Progress {
	target := goals.SessionsPerWeek
	if target < 1 {
		target = models.DefaultGoals().SessionsPerWeek
	}
	return Progress{Count: len(WeekSessions(sessions, now)), Target: target}
}

// CompCountdown returns whole days from today until the competition.
// ok is false when no competition date is set.
func CompCountdown(goals models.Goals, now time.Time) (days int, ok bool) {
	if goals.CompDate.IsZero() {
		return 0, false
	}
	return goals.CompDate.DaysSince(models.DateOf(now)), true
}

// RecentSessions returns up to n sessions, newest date first. Sessions on the
// same date keep their stored order. n <= 0 means no limit.
func RecentSessions(sessions []models.Session, n int) []models.Session {
	sorted := make([]models.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Summary bundles every figure the dashboard renders.
type Summary struct {
	WeekSessions  int          `json:"week_sessions"`
	WeekTarget    int          `json:"week_target"`
	WeekGoalMet   bool         `json:"week_goal_met"`
	Streak        int          `json:"streak"`
	HighestSend   models.Grade `json:"-"`
	TotalSends    int          `json:"total_sends"`
	TotalAttempts int          `json:"total_attempts"`
	Histogram     Histogram    `json:"histogram"`
	CompDaysOut   *int         `json:"comp_days_out,omitempty"`
}

// Compute derives a Summary from one snapshot.
func Compute(sessions []models.Session, goals models.Goals, now time.Time) Summary {
	progress := WeeklyProgress(sessions, goals, now)
	sum := Summary{
		WeekSessions:  progress.Count,
		WeekTarget:    progress.Target,
		WeekGoalMet:   progress.Met(),
		Streak:        Streak(sessions, now),
		HighestSend:   HighestSend(sessions),
		TotalSends:    TotalSends(sessions),
		TotalAttempts: TotalAttempts(sessions),
		Histogram:     GradeHistogram(sessions),
	}
	if days, ok := CompCountdown(goals, now); ok {
		sum.CompDaysOut = &days
	}
	return sum
}

// Progress returns the weekly progress carried in s.
func (s Summary) Progress() Progress {
	return Progress{Count: s.WeekSessions, Target: s.WeekTarget}
}
