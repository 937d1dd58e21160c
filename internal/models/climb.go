package models

// Climb is one problem tried during a session. It belongs to exactly one Session.
type Climb struct {
	ID       string `json:"id"`
	Grade    Grade  `json:"grade"`
	Color    string `json:"color"`
	Attempts int    `json:"attempts"`
	Sent     bool   `json:"sent"`
	Flash    bool   `json:"flash"`
	Style    string `json:"style"`
	Notes    string `json:"notes"`
}

// ClimbStatus summarises the outcome of a climb.
type ClimbStatus string

const (
	StatusFlash   ClimbStatus = "Flash"
	StatusSent    ClimbStatus = "Sent"
	StatusProject ClimbStatus = "Project"
)

// NewClimb returns a V3 project with one attempt.
func NewClimb(id string) Climb {
	return Climb{
		ID:       id,
		Grade:    GradeV3,
		Attempts: 1,
	}
}

// SetFlash marks or unmarks a flash. A flash is always a send on the first attempt.
func (c *Climb) SetFlash(flash bool) {
	c.Flash = flash
	if flash {
		c.Sent = true
		c.Attempts = 1
	}
}

// SetSent marks or unmarks a send. Clearing a send clears the flash too.
func (c *Climb) SetSent(sent bool) {
	c.Sent = sent
	if !sent {
		c.Flash = false
	}
}

// SetAttempts sets the try count, never below one. More than one try is not a flash.
func (c *Climb) SetAttempts(n int) {
	if n < 1 {
		n = 1
	}
	c.Attempts = n
	if n > 1 {
		c.Flash = false
	}
}

// AttemptCount is Attempts with legacy zero/negative values counted as one try.
func (c Climb) AttemptCount() int {
	if c.Attempts < 1 {
		return 1
	}
	return c.Attempts
}

func (c Climb) Status() ClimbStatus {
	switch {
	case c.Flash:
		return StatusFlash
	case c.Sent:
		return StatusSent
	default:
		return StatusProject
	}
}
