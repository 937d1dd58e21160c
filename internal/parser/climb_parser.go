package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/balkashynov/sendit/internal/models"
)

// ParsedClimb represents a climb parsed from quick syntax
type ParsedClimb struct {
	Grade    models.Grade
	Attempts int
	Sent     bool
	Flash    bool
	Color    string
	Style    string
	Notes    string
	Errors   []string
}

var (
	quotedRegex   = regexp.MustCompile(`"([^"]*)"`)
	attemptsRegex = regexp.MustCompile(`^(?:x(\d+)|(\d+)x|(\d+)att)$`)
)

// ParseClimb extracts a climb from a one-line description
// Syntax: `V5 x3 sent #red @overhang "heel hook at the lip"`
//   - V5 / VB       grade (required)
//   - x3, 3x, 3att  attempts
//   - sent | flash | project
//   - #colour       hold colour
//   - @style        wall/hold style (use dashes for spaces: @comp-style)
//   - "..."         route notes
func ParseClimb(input string) ParsedClimb {
	result := ParsedClimb{
		Grade:    models.NoGrade,
		Attempts: 1,
		Errors:   []string{},
	}

	// Pull out quoted notes first so their words are not treated as tokens
	if m := quotedRegex.FindStringSubmatch(input); len(m) > 1 {
		result.Notes = strings.TrimSpace(m[1])
		input = quotedRegex.ReplaceAllString(input, " ")
	}

	for _, token := range strings.Fields(input) {
		lower := strings.ToLower(token)
		switch {
		case lower == "sent" || lower == "send":
			result.Sent = true
		case lower == "flash" || lower == "flashed":
			result.Flash = true
		case lower == "project" || lower == "proj":
			result.Sent = false
		case strings.HasPrefix(token, "#"):
			color := models.NormalizeColor(token[1:])
			if color == "" {
				result.Errors = append(result.Errors, "Unknown colour '"+token[1:]+"'. Use: "+strings.Join(models.Colors, ", "))
				continue
			}
			result.Color = color
		case strings.HasPrefix(token, "@"):
			style := models.NormalizeStyle(token[1:])
			if style == "" {
				result.Errors = append(result.Errors, "Unknown style '"+token[1:]+"'. Use: "+strings.Join(models.Styles, ", "))
				continue
			}
			result.Style = style
		case attemptsRegex.MatchString(lower):
			m := attemptsRegex.FindStringSubmatch(lower)
			n := 0
			for _, g := range m[1:] {
				if g != "" {
					n, _ = strconv.Atoi(g)
				}
			}
			if n < 1 {
				result.Errors = append(result.Errors, "Attempts must be at least 1")
				continue
			}
			result.Attempts = n
		default:
			g, err := models.ParseGrade(token)
			if err != nil {
				result.Errors = append(result.Errors, "Unrecognised '"+token+"'")
				continue
			}
			result.Grade = g
		}
	}

	if result.Grade == models.NoGrade {
		result.Errors = append(result.Errors, "Grade is required (VB, V0-V12)")
	}

	return result
}

// Apply copies the parsed fields onto c, honouring the flash/sent rules.
func (p ParsedClimb) Apply(c *models.Climb) {
	if p.Grade.Valid() {
		c.Grade = p.Grade
	}
	c.Color = p.Color
	c.Style = p.Style
	c.Notes = p.Notes
	c.SetAttempts(p.Attempts)
	c.SetSent(p.Sent)
	if p.Flash {
		c.SetFlash(true)
	}
}
