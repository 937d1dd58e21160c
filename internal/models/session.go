package models

// Session represents one day's climbing session
type Session struct {
	ID            string        `json:"id"`
	Date          Date          `json:"date"`
	GymName       string        `json:"gymName"`
	Duration      int           `json:"duration"` // minutes
	EnergyBefore  EnergyLevel   `json:"energyBefore"`
	EnergyAfter   EnergyLevel   `json:"energyAfter"`
	SkinCondition SkinCondition `json:"skinCondition"`
	PsychLevel    int           `json:"psychLevel"`
	Climbs        []Climb       `json:"climbs"` // insertion order, last added last
	Notes         string        `json:"notes"`
	Goals         string        `json:"goals"` // focus for the next session
}

// Default values for a freshly logged session.
const (
	DefaultDuration = 60
	DefaultPsych    = 3
)

// NewSession returns a session on date with the standard defaults and no climbs.
func NewSession(id string, date Date) Session {
	return Session{
		ID:            id,
		Date:          date,
		Duration:      DefaultDuration,
		EnergyBefore:  EnergyModerate,
		EnergyAfter:   EnergyModerate,
		SkinCondition: SkinGood,
		PsychLevel:    DefaultPsych,
		Climbs:        []Climb{},
	}
}

// ClimbIndex returns the position of the climb with id, or -1.
func (s Session) ClimbIndex(id string) int {
	for i, c := range s.Climbs {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no climb storage with s.
func (s Session) Clone() Session {
	if s.Climbs != nil {
		climbs := make([]Climb, len(s.Climbs))
		copy(climbs, s.Climbs)
		s.Climbs = climbs
	}
	return s
}

// CloneSessions deep-copies a session list.
func CloneSessions(sessions []Session) []Session {
	if sessions == nil {
		return nil
	}
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = s.Clone()
	}
	return out
}
