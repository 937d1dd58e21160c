package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetFlashForcesSendOnFirstAttempt(t *testing.T) {
	c := NewClimb("c1")
	c.SetAttempts(4)

	c.SetFlash(true)
	assert.True(t, c.Flash)
	assert.True(t, c.Sent)
	assert.Equal(t, 1, c.Attempts)
	assert.Equal(t, StatusFlash, c.Status())
}

func TestClearingSentClearsFlash(t *testing.T) {
	c := NewClimb("c1")
	c.SetFlash(true)

	c.SetSent(false)
	assert.False(t, c.Sent)
	assert.False(t, c.Flash)
	assert.Equal(t, StatusProject, c.Status())
}

func TestClearingFlashKeepsSend(t *testing.T) {
	c := NewClimb("c1")
	c.SetFlash(true)

	c.SetFlash(false)
	assert.False(t, c.Flash)
	assert.True(t, c.Sent)
	assert.Equal(t, StatusSent, c.Status())
}

func TestSetAttempts(t *testing.T) {
	c := NewClimb("c1")
	c.SetAttempts(0)
	assert.Equal(t, 1, c.Attempts)

	c.SetFlash(true)
	c.SetAttempts(3)
	assert.False(t, c.Flash, "more than one try cannot be a flash")
	assert.True(t, c.Sent)
	assert.Equal(t, 3, c.Attempts)
}

func TestAttemptCountTreatsLegacyZeroAsOne(t *testing.T) {
	assert.Equal(t, 1, Climb{Attempts: 0}.AttemptCount())
	assert.Equal(t, 5, Climb{Attempts: 5}.AttemptCount())
}

func TestSessionClone(t *testing.T) {
	s := NewSession("s1", Date{2026, 3, 14})
	s.Climbs = append(s.Climbs, NewClimb("a"))

	clone := s.Clone()
	clone.Climbs[0].Grade = GradeV9

	assert.Equal(t, GradeV3, s.Climbs[0].Grade)
	assert.Equal(t, 0, s.ClimbIndex("a"))
	assert.Equal(t, -1, s.ClimbIndex("missing"))
	assert.Nil(t, CloneSessions(nil))
}

func TestDefaultGoals(t *testing.T) {
	g := DefaultGoals()
	assert.Equal(t, GradeV8, g.TargetGrade)
	assert.Equal(t, 3, g.SessionsPerWeek)
	assert.True(t, g.CompDate.IsZero())
	assert.Empty(t, g.CompName)
	assert.Equal(t, DefaultGoalNotes, g.Notes)
	assert.True(t, g.Valid())

	g.SessionsPerWeek = 0
	assert.False(t, g.Valid())
}
