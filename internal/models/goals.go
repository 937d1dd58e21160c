package models

// DefaultGoalNotes is the motivational note a fresh install starts with.
const DefaultGoalNotes = "Get back to projecting V8-V10. Commit to training on every day off."

// Goals is the single long-term training target record. It is overwritten, never deleted.
type Goals struct {
	TargetGrade     Grade  `json:"targetGrade"`
	SessionsPerWeek int    `json:"sessionsPerWeek"`
	CompDate        Date   `json:"compDate"`
	CompName        string `json:"compName"`
	Notes           string `json:"notes"`
}

// DefaultGoals is used whenever no valid goals record is stored.
func DefaultGoals() Goals {
	return Goals{
		TargetGrade:     GradeV8,
		SessionsPerWeek: 3,
		Notes:           DefaultGoalNotes,
	}
}

// Valid reports whether the record satisfies the goal invariants.
func (g Goals) Valid() bool {
	return g.TargetGrade.Valid() && g.SessionsPerWeek >= 1
}
