// Package app holds the in-memory session list and goals for one run and
// funnels every mutation through a Store, so the persisted copy always
// matches what the user last saw.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/balkashynov/sendit/internal/db"
	"github.com/balkashynov/sendit/internal/models"
	"github.com/balkashynov/sendit/internal/stats"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrClimbNotFound   = errors.New("climb not found")
)

// Persister is the subset of db.Store the app writes through.
type Persister interface {
	LoadSessions() []models.Session
	SaveSessions([]models.Session)
	LoadGoals() models.Goals
	SaveGoals(models.Goals)
}

var _ Persister = (*db.Store)(nil)

// App owns the current sessions and goals.
type App struct {
	store    Persister
	sessions []models.Session
	goals    models.Goals

	now   func() time.Time
	newID func() string
}

// Option configures an App.
type Option func(*App)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithIDs replaces the uuid generator, for tests.
func WithIDs(newID func() string) Option {
	return func(a *App) { a.newID = newID }
}

// Load reads the persisted state and returns an App holding it.
func Load(store Persister, opts ...Option) *App {
	a := &App{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.sessions = store.LoadSessions()
	a.goals = store.LoadGoals()
	return a
}

// Now returns the app's current time.
func (a *App) Now() time.Time {
	return a.now()
}

// Today returns the app's current calendar date.
func (a *App) Today() models.Date {
	return models.DateOf(a.now())
}

// Sessions returns a copy of every session in stored order.
func (a *App) Sessions() []models.Session {
	return models.CloneSessions(a.sessions)
}

// Session returns a copy of the session with id.
func (a *App) Session(id string) (models.Session, error) {
	i := a.indexOf(id)
	if i < 0 {
		return models.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return a.sessions[i].Clone(), nil
}

// Goals returns the current goals.
func (a *App) Goals() models.Goals {
	return a.goals
}

// NewSession returns an unsaved session for today with a fresh id.
func (a *App) NewSession() models.Session {
	return models.NewSession(a.newID(), a.Today())
}

// NewClimb returns an unsaved climb with a fresh id.
func (a *App) NewClimb() models.Climb {
	return models.NewClimb(a.newID())
}

// SaveSession replaces the session with the same id, or appends it if new.
// A session without an id is given one.
func (a *App) SaveSession(s models.Session) models.Session {
	if s.ID == "" {
		s.ID = a.newID()
	}
	if s.Date.IsZero() {
		s.Date = a.Today()
	}
	s = normalizeSession(s)
	s = a.assignClimbIDs(s)

	next := make([]models.Session, 0, len(a.sessions)+1)
	for _, existing := range a.sessions {
		if existing.ID != s.ID {
			next = append(next, existing)
		}
	}
	next = append(next, s)
	a.commitSessions(next)
	return s.Clone()
}

// DeleteSession removes exactly the session with id.
func (a *App) DeleteSession(id string) error {
	i := a.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	next := make([]models.Session, 0, len(a.sessions)-1)
	next = append(next, a.sessions[:i]...)
	next = append(next, a.sessions[i+1:]...)
	a.commitSessions(next)
	return nil
}

// AddClimb appends a climb to the end of a session's climb list.
func (a *App) AddClimb(sessionID string, c models.Climb) (models.Climb, error) {
	i := a.indexOf(sessionID)
	if i < 0 {
		return models.Climb{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s := a.sessions[i].Clone()
	if c.ID == "" || s.ClimbIndex(c.ID) >= 0 {
		c.ID = a.newID()
	}
	c = normalizeClimb(c)
	s.Climbs = append(s.Climbs, c)
	a.replaceSession(i, s)
	return c, nil
}

// UpdateClimb applies edit to a copy of the climb, then stores it in place.
func (a *App) UpdateClimb(sessionID, climbID string, edit func(*models.Climb)) (models.Climb, error) {
	i := a.indexOf(sessionID)
	if i < 0 {
		return models.Climb{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s := a.sessions[i].Clone()
	j := s.ClimbIndex(climbID)
	if j < 0 {
		return models.Climb{}, fmt.Errorf("%w: %s", ErrClimbNotFound, climbID)
	}
	c := s.Climbs[j]
	edit(&c)
	c.ID = climbID
	c = normalizeClimb(c)
	s.Climbs[j] = c
	a.replaceSession(i, s)
	return c, nil
}

// RemoveClimb drops a climb from its session.
func (a *App) RemoveClimb(sessionID, climbID string) error {
	i := a.indexOf(sessionID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s := a.sessions[i].Clone()
	j := s.ClimbIndex(climbID)
	if j < 0 {
		return fmt.Errorf("%w: %s", ErrClimbNotFound, climbID)
	}
	s.Climbs = append(s.Climbs[:j], s.Climbs[j+1:]...)
	a.replaceSession(i, s)
	return nil
}

// UpdateGoals applies edit to a copy of the goals and persists the result.
// Edits that break the goal invariants are coerced back into range.
func (a *App) UpdateGoals(edit func(*models.Goals)) models.Goals {
	g := a.goals
	edit(&g)
	if !g.TargetGrade.Valid() {
		g.TargetGrade = a.goals.TargetGrade
	}
	if g.SessionsPerWeek < 1 {
		g.SessionsPerWeek = 1
	}
	a.goals = g
	a.store.SaveGoals(g)
	return g
}

// Stats computes the dashboard figures from the current snapshot.
func (a *App) Stats() stats.Summary {
	return stats.Compute(a.sessions, a.goals, a.now())
}

// Recent returns up to n sessions, newest first.
func (a *App) Recent(n int) []models.Session {
	return models.CloneSessions(stats.RecentSessions(a.sessions, n))
}

// FindSession resolves a full id or a unique id prefix.
func (a *App) FindSession(ref string) (models.Session, error) {
	if s, err := a.Session(ref); err == nil {
		return s, nil
	}
	var match *models.Session
	for i := range a.sessions {
		if len(ref) >= 4 && len(a.sessions[i].ID) >= len(ref) && a.sessions[i].ID[:len(ref)] == ref {
			if match != nil {
				return models.Session{}, fmt.Errorf("session id %q is ambiguous", ref)
			}
			match = &a.sessions[i]
		}
	}
	if match == nil {
		return models.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, ref)
	}
	return match.Clone(), nil
}

func (a *App) indexOf(id string) int {
	for i, s := range a.sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (a *App) replaceSession(i int, s models.Session) {
	next := models.CloneSessions(a.sessions)
	next[i] = s
	a.commitSessions(next)
}

func (a *App) commitSessions(next []models.Session) {
	a.sessions = next
	a.store.SaveSessions(models.CloneSessions(next))
}

func (a *App) assignClimbIDs(s models.Session) models.Session {
	seen := make(map[string]bool, len(s.Climbs))
	for i := range s.Climbs {
		if s.Climbs[i].ID == "" || seen[s.Climbs[i].ID] {
			s.Climbs[i].ID = a.newID()
		}
		seen[s.Climbs[i].ID] = true
	}
	return s
}

// normalizeSession coerces out-of-range input to safe values instead of rejecting it.
func normalizeSession(s models.Session) models.Session {
	s = s.Clone()
	if s.Climbs == nil {
		s.Climbs = []models.Climb{}
	}
	if s.Duration < 0 {
		s.Duration = 0
	}
	if s.EnergyBefore < models.EnergyExhausted || s.EnergyBefore > models.EnergyPeak {
		s.EnergyBefore = models.EnergyModerate
	}
	if s.EnergyAfter < models.EnergyExhausted || s.EnergyAfter > models.EnergyPeak {
		s.EnergyAfter = models.EnergyModerate
	}
	if s.SkinCondition < models.SkinFresh || s.SkinCondition > models.SkinWrecked {
		s.SkinCondition = models.SkinGood
	}
	s.PsychLevel = models.ClampPsych(s.PsychLevel)
	for i := range s.Climbs {
		s.Climbs[i] = normalizeClimb(s.Climbs[i])
	}
	return s
}

func normalizeClimb(c models.Climb) models.Climb {
	if !c.Grade.Valid() {
		c.Grade = models.GradeV3
	}
	// A stored flash wins over a stale attempt count.
	if c.Flash {
		c.SetFlash(true)
	} else {
		c.SetAttempts(c.Attempts)
	}
	if !c.Sent {
		c.SetSent(false)
	}
	c.Color = models.NormalizeColor(c.Color)
	c.Style = models.NormalizeStyle(c.Style)
	return c
}
