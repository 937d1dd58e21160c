package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/sendit/internal/models"
)

var now = time.Date(2026, time.October, 17, 18, 45, 0, 0, time.UTC)

func today() models.Date {
	return models.DateOf(now)
}

// sessionOn builds a session daysAgo days before now carrying the given climbs.
func sessionOn(daysAgo int, climbs ...models.Climb) models.Session {
	s := models.NewSession(fmt.Sprintf("s-%d-%d", daysAgo, len(climbs)), today().AddDays(-daysAgo))
	s.Climbs = append(s.Climbs, climbs...)
	return s
}

func climb(g models.Grade, sent bool, attempts int) models.Climb {
	c := models.NewClimb(fmt.Sprintf("%s-%t-%d", g, sent, attempts))
	c.Grade = g
	c.SetAttempts(attempts)
	c.SetSent(sent)
	return c
}

func TestWeekSessionsWindow(t *testing.T) {
	var sessions []models.Session
	for daysAgo := -2; daysAgo <= 10; daysAgo++ {
		sessions = append(sessions, sessionOn(daysAgo))
	}

	week := WeekSessions(sessions, now)

	require.Len(t, week, 8)
	for _, s := range week {
		age := today().DaysSince(s.Date)
		assert.GreaterOrEqual(t, age, 0, "future session %s included", s.Date)
		assert.LessOrEqual(t, age, WeekWindowDays, "old session %s included", s.Date)
	}
}

func TestWeekSessionsIsSubsetAndPure(t *testing.T) {
	sessions := []models.Session{sessionOn(0), sessionOn(3), sessionOn(30)}
	before := models.CloneSessions(sessions)

	week := WeekSessions(sessions, now)

	assert.Equal(t, []models.Session{sessions[0], sessions[1]}, week)
	assert.Equal(t, before, sessions)
	assert.Empty(t, WeekSessions(nil, now))
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"no sessions", nil, 0},
		{"today only", []int{0}, 1},
		{"three consecutive days", []int{0, 1, 2}, 3},
		{"gap after today", []int{0, 3}, 1},
		{"input order does not matter", []int{2, 0, 1}, 3},
		{"duplicates on a day count once", []int{0, 0, 1, 1}, 2},
		{"today missing still counts prior run", []int{1, 2, 3}, 3},
		{"today and yesterday missing", []int{2, 3}, 0},
		{"old sessions only", []int{20, 21}, 0},
		{"future sessions ignored", []int{-1, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sessions []models.Session
			for _, d := range tt.daysAgo {
				sessions = append(sessions, sessionOn(d))
			}
			assert.Equal(t, tt.want, Streak(sessions, now))
		})
	}
}

func TestStreakIsBoundedByLookback(t *testing.T) {
	var sessions []models.Session
	for d := 0; d < 90; d++ {
		sessions = append(sessions, sessionOn(d))
	}
	assert.Equal(t, StreakLookbackDays, Streak(sessions, now))
}

func TestHighestSend(t *testing.T) {
	assert.Equal(t, models.NoGrade, HighestSend(nil))

	projectsOnly := []models.Session{sessionOn(0, climb(models.GradeV11, false, 9))}
	assert.Equal(t, models.NoGrade, HighestSend(projectsOnly))
	assert.Equal(t, "—", HighestSend(projectsOnly).String())

	orders := [][]models.Grade{
		{models.GradeV2, models.GradeV5, models.GradeV9},
		{models.GradeV9, models.GradeV2, models.GradeV5},
		{models.GradeV5, models.GradeV9, models.GradeV2},
	}
	for _, order := range orders {
		var sessions []models.Session
		for i, g := range order {
			sessions = append(sessions, sessionOn(i, climb(g, true, 2)))
		}
		sessions = append(sessions, sessionOn(5, climb(models.GradeV12, false, 3)))
		assert.Equal(t, models.GradeV9, HighestSend(sessions))
	}
}

func TestHighestSendComparesByScaleNotLabel(t *testing.T) {
	sessions := []models.Session{sessionOn(0,
		climb(models.GradeV9, true, 1),
		climb(models.GradeV10, true, 1),
	)}
	assert.Equal(t, models.GradeV10, HighestSend(sessions))
}

func TestTotals(t *testing.T) {
	sessions := []models.Session{
		sessionOn(0, climb(models.GradeV4, true, 5), climb(models.GradeV6, false, 8)),
		sessionOn(1, climb(models.GradeV3, true, 1)),
		sessionOn(2),
	}

	assert.Equal(t, 2, TotalSends(sessions), "sends count climbs, not attempts")
	assert.Equal(t, 14, TotalAttempts(sessions))
}

func TestTotalAttemptsCountsLegacyZeroAsOne(t *testing.T) {
	legacy := models.Climb{ID: "x", Grade: models.GradeV1, Attempts: 0}
	s := sessionOn(0)
	s.Climbs = append(s.Climbs, legacy)

	assert.Equal(t, 1, TotalAttempts([]models.Session{s}))
}

func TestTotalAttemptsNeverDecreasesAsClimbsAreAdded(t *testing.T) {
	s := sessionOn(0)
	prev := TotalAttempts([]models.Session{s})
	for i := 1; i <= 6; i++ {
		s.Climbs = append(s.Climbs, climb(models.GradeV2, i%2 == 0, i))
		got := TotalAttempts([]models.Session{s})
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestNilClimbsContributeNothing(t *testing.T) {
	legacy := models.Session{ID: "legacy", Date: today()}
	sessions := []models.Session{legacy}

	assert.Equal(t, 0, TotalSends(sessions))
	assert.Equal(t, 0, TotalAttempts(sessions))
	assert.Equal(t, models.NoGrade, HighestSend(sessions))
	assert.Equal(t, 0, GradeHistogram(sessions).Total())
	assert.Equal(t, 1, Streak(sessions, now))
	assert.Len(t, WeekSessions(sessions, now), 1)
}

func TestGradeHistogram(t *testing.T) {
	sessions := []models.Session{
		sessionOn(0, climb(models.GradeV4, true, 2), climb(models.GradeV4, true, 1), climb(models.GradeV7, false, 4)),
		sessionOn(9, climb(models.GradeV4, true, 3), climb(models.GradeVB, true, 1)),
	}

	h := GradeHistogram(sessions)
	assert.Equal(t, 3, h.Count(models.GradeV4))
	assert.Equal(t, 1, h.Count(models.GradeVB))
	assert.Equal(t, 0, h.Count(models.GradeV7))
	assert.Equal(t, 0, h.Count(models.NoGrade))
	assert.Equal(t, 3, h.Max())
	assert.Equal(t, 4, h.Total())

	var empty Histogram
	assert.Equal(t, 1, empty.Max())
}

func TestSessionSummary(t *testing.T) {
	flash := climb(models.GradeV5, true, 1)
	flash.SetFlash(true)
	s := sessionOn(0, flash, climb(models.GradeV7, true, 4), climb(models.GradeV8, false, 6))

	got := SessionSummary(s)
	assert.Equal(t, SessionStats{Sends: 2, Climbs: 3, Flashes: 1, Highest: models.GradeV7}, got)
	assert.Equal(t, models.NoGrade, SessionSummary(sessionOn(1)).Highest)
}

func TestWeeklyProgress(t *testing.T) {
	goals := models.DefaultGoals()
	sessions := []models.Session{sessionOn(0), sessionOn(2), sessionOn(12)}

	p := WeeklyProgress(sessions, goals, now)
	assert.Equal(t, Progress{Count: 2, Target: 3}, p)
	assert.False(t, p.Met())
	assert.InDelta(t, 2.0/3.0, p.Ratio(), 1e-9)

	goals.SessionsPerWeek = 1
	p = WeeklyProgress(sessions, goals, now)
	assert.True(t, p.Met())
	assert.Equal(t, 1.0, p.Ratio())
}

func TestCompCountdown(t *testing.T) {
	goals := models.DefaultGoals()
	_, ok := CompCountdown(goals, now)
	assert.False(t, ok)

	goals.CompDate = today().AddDays(12)
	days, ok := CompCountdown(goals, now)
	assert.True(t, ok)
	assert.Equal(t, 12, days)

	goals.CompDate = today().AddDays(-3)
	days, _ = CompCountdown(goals, now)
	assert.Equal(t, -3, days)
}

func TestRecentSessions(t *testing.T) {
	a := sessionOn(3)
	a.ID = "a"
	b := sessionOn(0)
	b.ID = "b"
	c := sessionOn(3)
	c.ID = "c"
	d := sessionOn(1)
	d.ID = "d"
	sessions := []models.Session{a, b, c, d}

	ids := func(ss []models.Session) []string {
		var out []string
		for _, s := range ss {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(RecentSessions(sessions, 0)))
	assert.Equal(t, []string{"b", "d"}, ids(RecentSessions(sessions, 2)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(sessions), "input must not be reordered")
}

func TestCompute(t *testing.T) {
	goals := models.DefaultGoals()
	goals.CompDate = today().AddDays(30)
	sessions := []models.Session{
		sessionOn(0, climb(models.GradeV6, true, 3)),
		sessionOn(1, climb(models.GradeV8, false, 5)),
	}

	sum := Compute(sessions, goals, now)
	assert.Equal(t, 2, sum.WeekSessions)
	assert.Equal(t, 3, sum.WeekTarget)
	assert.False(t, sum.WeekGoalMet)
	assert.Equal(t, 2, sum.Streak)
	assert.Equal(t, models.GradeV6, sum.HighestSend)
	assert.Equal(t, 1, sum.TotalSends)
	assert.Equal(t, 8, sum.TotalAttempts)
	assert.Equal(t, 1, sum.Histogram.Count(models.GradeV6))
	require.NotNil(t, sum.CompDaysOut)
	assert.Equal(t, 30, *sum.CompDaysOut)
	assert.Equal(t, Progress{Count: 2, Target: 3}, sum.Progress())

	// Same input, same output.
	assert.Equal(t, sum, Compute(sessions, goals, now))
}
